package engine

// AttributeXPDivisor converts awarded XP into attribute points.
const AttributeXPDivisor = 10

// categoryAttribute is the fixed category → attribute mapping. Vitality is
// part of the attribute set but no category feeds it directly.
var categoryAttribute = map[Category]Attribute{
	CategoryHealth:     AttributeStrength,
	CategoryWork:       AttributeWisdom,
	CategoryCreativity: AttributeDexterity,
	CategorySocial:     AttributeCharisma,
	CategoryLearning:   AttributeIntelligence,
}

// DeriveAttributeGain maps a category-tagged XP award to an attribute gain.
// A zero gain (award below the divisor) is not an error; callers just skip
// the contribution.
func DeriveAttributeGain(c Category, xp int) (Attribute, int, error) {
	attr, ok := categoryAttribute[c]
	if !ok {
		return "", 0, UnknownCategoryError{Category: c}
	}
	return attr, xp / AttributeXPDivisor, nil
}
