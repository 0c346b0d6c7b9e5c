package slip39

// RS1024 is a Reed-Solomon code over GF(1024) that guarantees detection of
// any error affecting at most 3 words and has less than a 1 in 10^9 chance
// of failing to detect more errors.

var rs1024Gen = [10]int{
	0xe0e040, 0x1c1c080, 0x3838100, 0x7070200, 0xe0e0009,
	0x1c0c2412, 0x38086c24, 0x3090fc48, 0x21b1f890, 0x3f3f120,
}

// rs1024ErrorGen walks the remainder back through the data to find the word
// that explains a single-word error.
var rs1024ErrorGen = [10]int{
	0x91f9f87, 0x122f1f07, 0x244e1e07, 0x81c1c07, 0x10281c0e,
	0x20401c1c, 0x103838, 0x207070, 0x40e0e0, 0x81c1c0,
}

func stringToInts(s string) []int {
	ints := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		ints[i] = int(s[i])
	}
	return ints
}

func rs1024Polymod(values []int) int {
	chk := 1
	for _, v := range values {
		b := chk >> 20
		chk = ((chk & 0xfffff) << 10) ^ v
		for i := range 10 {
			if (b>>i)&1 != 0 {
				chk ^= rs1024Gen[i]
			}
		}
	}
	return chk
}

func customizedValues(cs string, data []int, extra int) []int {
	values := make([]int, 0, len(cs)+len(data)+extra)
	values = append(values, stringToInts(cs)...)
	return append(values, data...)
}

func rs1024VerifyChecksum(cs string, data []int) bool {
	return rs1024Polymod(customizedValues(cs, data, 0)) == 1
}

func rs1024CreateChecksum(cs string, data []int) []int {
	values := customizedValues(cs, data, checksumLengthWords)
	values = append(values, make([]int, checksumLengthWords)...)
	polymod := rs1024Polymod(values) ^ 1
	checksum := make([]int, checksumLengthWords)
	for i := range checksumLengthWords {
		checksum[i] = (polymod >> (radixBits * (checksumLengthWords - 1 - i))) & last10Bits
	}
	return checksum
}

// rs1024ErrorIndex returns the position in data of the word most likely
// responsible for a checksum failure, or -1 if the checksum is valid or the
// error cannot be attributed to a single word.
func rs1024ErrorIndex(cs string, data []int) int {
	chk := rs1024Polymod(customizedValues(cs, data, 0)) ^ 1
	if chk == 0 {
		return -1
	}

	for i := len(data) - 1; i >= 0; i-- {
		b := chk & last10Bits
		chk >>= radixBits
		if chk == 0 {
			return i
		}
		for j := range 10 {
			if (b>>j)&1 != 0 {
				chk ^= rs1024ErrorGen[j]
			}
		}
	}
	return -1
}
