package encoder

// Addressing transforms between the three identity levels. Inputs are
// pre-validated by callers; these are pure integer maps.

// VirtualID returns the slot in the raw accumulator table for a physical
// encoder of a bank. The shifted variant of a control lives 64 slots above
// its banked id and shares the same configuration entry.
func VirtualID(bank, phys int, shifted bool) int {
	id := bank*PhysicalEncoders + phys
	if shifted {
		id += BankedEncoders
	}
	return id
}

// BankedID strips the shift axis from a virtual id, yielding the
// configuration table index.
func BankedID(virtual int) int {
	return virtual & bankedMask
}

// BankOf returns the bank a banked id belongs to.
func BankOf(banked int) int {
	return banked / PhysicalEncoders
}

// PhysOf returns the physical index of a banked id.
func PhysOf(banked int) int {
	return banked % PhysicalEncoders
}
