package slip39

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// memberGroup collects the decoded shares of one group.
type memberGroup struct {
	params GroupParameters
	prefix string
	shares []rawShare
}

func (g *memberGroup) add(share Share) error {
	s := rawShare{index: share.MemberIndex, value: share.Value}
	for _, existing := range g.shares {
		if existing.index != s.index {
			continue
		}
		if sameValues(existing, s) {
			return nil
		}
		e := mnemonicError(ErrDuplicateMemberIndex, "member %d", s.index+1)
		e.Prefix = g.prefix
		return e
	}
	g.shares = append(g.shares, s)
	return nil
}

func (g *memberGroup) complete() bool {
	return len(g.shares) >= g.params.MemberThreshold
}

// decodeMnemonics parses mnemonics and sorts them into groups, in the order
// each group is first seen.
func decodeMnemonics(mnemonics []string) (CommonParameters, []*memberGroup, error) {
	var common CommonParameters
	if len(mnemonics) == 0 {
		return common, nil, mnemonicError(ErrNoMnemonics, "")
	}

	idExps := mapset.NewThreadUnsafeSet[[2]int]()
	groupThresholds := mapset.NewThreadUnsafeSet[int]()
	groupCounts := mapset.NewThreadUnsafeSet[int]()

	var groups []*memberGroup
	byIndex := make(map[int]*memberGroup)
	for _, mnemonic := range mnemonics {
		share, err := ParseShare(mnemonic)
		if err != nil {
			return common, nil, err
		}
		idExps.Add([2]int{share.Identifier, share.IterationExponent})
		groupThresholds.Add(share.GroupThreshold)
		groupCounts.Add(share.GroupCount)

		group, ok := byIndex[share.GroupIndex]
		if !ok {
			group = &memberGroup{params: share.GroupParameters(), prefix: share.groupPrefix()}
			byIndex[share.GroupIndex] = group
			groups = append(groups, group)
		} else if group.params.MemberThreshold != share.MemberThreshold {
			e := mnemonicError(ErrMismatchedMemberThreshold, "")
			e.Prefix = group.prefix
			return common, nil, e
		}
		if err := group.add(share); err != nil {
			return common, nil, err
		}
		common = share.CommonParameters()
	}

	switch {
	case idExps.Cardinality() != 1:
		return common, nil, mnemonicError(ErrMismatchedIdentifier, "")
	case groupThresholds.Cardinality() != 1:
		return common, nil, mnemonicError(ErrMismatchedGroupThreshold, "")
	case groupCounts.Cardinality() != 1:
		return common, nil, mnemonicError(ErrMismatchedGroupCount, "")
	}
	return common, groups, nil
}

func combineMnemonics(mnemonics []string) (EncryptedMasterSecret, error) {
	var ems EncryptedMasterSecret

	common, groups, err := decodeMnemonics(mnemonics)
	if err != nil {
		return ems, err
	}

	if len(groups) < common.GroupThreshold {
		return ems, mnemonicError(ErrInsufficientGroups,
			"%d provided, %d required", len(groups), common.GroupThreshold)
	}

	// Groups without enough members cannot contribute; drop them and fail
	// only if too few complete groups remain.
	var complete []*memberGroup
	var firstIncomplete *memberGroup
	for _, g := range groups {
		if g.complete() {
			complete = append(complete, g)
		} else if firstIncomplete == nil {
			firstIncomplete = g
		}
	}
	if len(complete) < common.GroupThreshold {
		threshold := firstIncomplete.params.MemberThreshold
		return ems, &MnemonicError{
			Err:       ErrInsufficientShares,
			Prefix:    firstIncomplete.prefix,
			WordIndex: -1,
			Required:  threshold,
			Missing:   threshold - len(firstIncomplete.shares),
		}
	}

	groupShares := make([]rawShare, 0, len(complete))
	for _, g := range complete {
		secret, err := recoverSecret(g.params.MemberThreshold, g.shares)
		if err != nil {
			return ems, err
		}
		groupShares = append(groupShares, rawShare{index: g.params.GroupIndex, value: secret})
	}

	value, err := recoverSecret(common.GroupThreshold, groupShares)
	if err != nil {
		return ems, err
	}
	for _, s := range groupShares {
		wipe(s.value)
	}

	return EncryptedMasterSecret{
		Identifier:        common.Identifier,
		IterationExponent: common.IterationExponent,
		Value:             value,
	}, nil
}
