package crypto

import "fmt"

// CommitmentCheck is the outcome of verifying one revealed session's seed
// commitments. It never panics and never returns a Go error — every
// failure is surfaced as an Errors entry; the core accumulates and
// returns, it never throws.
type CommitmentCheck struct {
	HouseValid       bool
	PlayerValid      bool
	SeedCombination  bool
	HasPlayerSeed    bool
	HasCombinedSeed  bool
	Errors           []string
}

// VerifyCommitments checks the house hash, the optional player hash, and
// the optional combined-seed identity:
//   - house hash must always match.
//   - if playerSeed is present, player hash must match.
//   - if both playerSeed and combinedSeed are present, combinedSeed must
//     equal houseSeed XOR playerSeed.
func VerifyCommitments(houseSeed uint32, houseCommitHash string, playerSeed *uint32, playerCommitHash string, combinedSeed *uint32) CommitmentCheck {
	check := CommitmentCheck{
		HouseValid:  VerifyCommitment(houseSeed, houseCommitHash),
		PlayerValid: true,
		SeedCombination: true,
	}

	if !check.HouseValid {
		check.Errors = append(check.Errors, fmt.Sprintf("house commitment mismatch: hash_seed(%d) != %s", houseSeed, houseCommitHash))
	}

	if playerSeed != nil {
		check.HasPlayerSeed = true
		check.PlayerValid = VerifyCommitment(*playerSeed, playerCommitHash)
		if !check.PlayerValid {
			check.Errors = append(check.Errors, fmt.Sprintf("player commitment mismatch: hash_seed(%d) != %s", *playerSeed, playerCommitHash))
		}

		if combinedSeed != nil {
			check.HasCombinedSeed = true
			expected := CombineSeeds(houseSeed, *playerSeed)
			check.SeedCombination = expected == *combinedSeed
			if !check.SeedCombination {
				check.Errors = append(check.Errors, fmt.Sprintf("seed combination mismatch: houseSeed ^ playerSeed = %d, got combinedSeed = %d", expected, *combinedSeed))
			}
		}
	}

	return check
}

// Valid reports whether every check that applied to this session passed.
func (c CommitmentCheck) Valid() bool {
	return len(c.Errors) == 0
}
