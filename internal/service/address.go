package service

// SplitAddress decomposes a free-text Japanese address into its prefecture
// and municipality components. Parsing is positional: the prefecture ends at
// the first 都/道/府/県 and the municipality at the following 市/区/町/村.
// Unparseable addresses return empty components and the caller falls back to
// nationwide baseline pricing.
func SplitAddress(address string) (prefecture, municipality string) {
	runes := []rune(address)

	prefEnd := -1
	for i, r := range runes {
		if r == '都' || r == '道' || r == '府' || r == '県' {
			prefEnd = i + 1
			// 京都府: the 都 belongs to the name, the 府 is the suffix.
			if r == '都' && i+1 < len(runes) && runes[i+1] == '府' {
				prefEnd = i + 2
			}
			break
		}
	}
	if prefEnd <= 0 {
		return "", ""
	}
	prefecture = string(runes[:prefEnd])

	rest := runes[prefEnd:]
	for i, r := range rest {
		if r == '市' || r == '区' || r == '町' || r == '村' {
			// A leading suffix rune is part of the name (市川市, 村山市).
			if i == 0 {
				continue
			}
			municipality = string(rest[:i+1])
			break
		}
	}

	return prefecture, municipality
}
