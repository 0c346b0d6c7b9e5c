package slip39_test

import (
	"encoding/hex"
	"fmt"

	"github.com/shamirbackup/go-slip39"
)

func Example() {
	masterSecret := "bb54aac4b89dc868ba37d9cc21b2cece"
	passphrase := "TREZOR"

	// Generate a single group of 3 of 5 shares for masterSecret
	masterSecretBytes, _ := hex.DecodeString(masterSecret)
	groupCount := 1
	memberGroupParams := []slip39.MemberGroupParameters{{MemberThreshold: 3, MemberCount: 5}}
	groups, _ := slip39.GenerateMnemonicsWithPassphrase(
		groupCount,
		memberGroupParams,
		masterSecretBytes,
		[]byte(passphrase),
	)
	fmt.Println(len(groups[0]))

	// Combine 3 of the 5 shares to recover the master secret
	shares := []string{groups[0][0], groups[0][2], groups[0][4]}
	recoveredSecret, _ := slip39.CombineMnemonicsWithPassphrase(
		shares,
		[]byte(passphrase),
	)
	fmt.Println(hex.EncodeToString(recoveredSecret))

	// Output: 5
	// bb54aac4b89dc868ba37d9cc21b2cece
}

func ExampleGenerateMnemonics() {
	masterSecret, _ := hex.DecodeString("00112233445566778899aabbccddeeff")

	// Two of three groups: a 1-of-1 backup, 2-of-3 family shares and
	// 3-of-5 friends
	groups, _ := slip39.GenerateMnemonics(2, []slip39.MemberGroupParameters{
		{MemberThreshold: 1, MemberCount: 1},
		{MemberThreshold: 2, MemberCount: 3},
		{MemberThreshold: 3, MemberCount: 5},
	}, masterSecret)

	// The backup plus two family shares
	shares := []string{groups[0][0], groups[1][0], groups[1][2]}
	recovered, _ := slip39.CombineMnemonics(shares)
	fmt.Println(hex.EncodeToString(recovered))

	// Output: 00112233445566778899aabbccddeeff
}

func ExampleParseShare() {
	share, _ := slip39.ParseShare("duckling enlarge academic academic agency result length solution fridge kidney coal piece deal husband erode duke ajar critical decision keyboard")
	fmt.Println(share.Identifier, share.IterationExponent)
	fmt.Printf("%d of %d groups, %d member threshold\n",
		share.GroupThreshold, share.GroupCount, share.MemberThreshold)

	// Output: 7945 0
	// 1 of 1 groups, 1 member threshold
}

func ExampleButtonSequenceCandidates() {
	fmt.Println(slip39.ButtonSequenceCandidates("937"))
	fmt.Println(slip39.ButtonSequence("academic"))

	// Output: [western zero]
	// 1212
}
