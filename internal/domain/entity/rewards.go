package entity

// RewardTier is a loyalty level unlocked by the credit balance.
type RewardTier struct {
	Name       string
	MinCredits int
	Perks      []string
}

// RewardTiers are ordered from lowest to highest.
var RewardTiers = []RewardTier{
	{Name: "Bronze", MinCredits: 0, Perks: []string{"Earn 1 credit per $1"}},
	{Name: "Silver", MinCredits: 100, Perks: []string{"Earn 1 credit per $1", "Free size upgrade on birthdays"}},
	{Name: "Gold", MinCredits: 300, Perks: []string{"Earn 1 credit per $1", "Free size upgrades", "Early access to seasonal drinks"}},
	{Name: "Platinum", MinCredits: 500, Perks: []string{"Earn 1 credit per $1", "Free size upgrades", "Early access to seasonal drinks", "Monthly free drink"}},
}

// TierFor returns the tier a balance falls in and the next tier, if any.
func TierFor(credits int) (current RewardTier, next *RewardTier) {
	current = RewardTiers[0]
	for i, tier := range RewardTiers {
		if credits < tier.MinCredits {
			n := RewardTiers[i]
			return current, &n
		}
		current = tier
	}

	return current, nil
}

// TierProgress is the percentage of the way from the current tier to the
// next one, 100 at the top tier.
func TierProgress(credits int) int {
	current, next := TierFor(credits)
	if next == nil {
		return 100
	}
	span := next.MinCredits - current.MinCredits
	progress := (credits - current.MinCredits) * 100 / span

	return min(100, max(0, progress))
}
