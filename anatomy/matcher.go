package anatomy

// CanEquip reports whether at least one undestroyed part carries every tag in
// required. An empty requirement is satisfied by any undestroyed part; the
// requirement must be met by a single part, never assembled across several.
// A nil receiver is a caller bug and panics; a missing match is a normal
// false result.
func (a *Anatomy) CanEquip(required TagSet) bool {
	for i := range a.Parts {
		part := &a.Parts[i]
		if part.Destroyed() {
			continue
		}
		if part.Tags.ContainsAll(required) {
			return true
		}
	}
	return false
}

// MatchingParts returns every undestroyed part whose tag set contains all of
// required, in declared anatomy order. The result is recomputed on every call
// and an empty slice simply means nothing qualifies.
func (a *Anatomy) MatchingParts(required TagSet) []*BodyPart {
	var matching []*BodyPart
	for i := range a.Parts {
		part := &a.Parts[i]
		if part.Destroyed() {
			continue
		}
		if part.Tags.ContainsAll(required) {
			matching = append(matching, part)
		}
	}
	return matching
}
