package capmarshal

// formatBigInt renders b in base-10, matching spec §4.4's {"@qclass":
// "bigint", digits: "<base-10 string>"} form.
func formatBigInt(b *BigInt) string {
	return b.String()
}

// parseBigInt parses a base-10 digit string into a BigInt, per spec §4.5's
// bigint revival rule.
func parseBigInt(digits string) (*BigInt, bool) {
	n := new(BigInt)
	_, ok := n.SetString(digits, 10)
	if !ok {
		return nil, false
	}
	return n, true
}
