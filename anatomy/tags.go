package anatomy

import (
	"encoding/json"
	"sort"
)

// Tag is a string label describing one capability of a body part, such as
// "grasp" or "armor". Items demand tags; parts provide them.
type Tag = string

// TagSet stores an unordered, duplicate-free collection of capability tags.
type TagSet map[Tag]struct{}

// NewTagSet builds a set from the provided tags, discarding duplicates and
// empty strings.
func NewTagSet(tags ...Tag) TagSet {
	set := make(TagSet, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}

// Contains reports whether the set holds the given tag.
func (s TagSet) Contains(tag Tag) bool {
	_, ok := s[tag]
	return ok
}

// ContainsAll reports whether every tag in required is present. An empty or
// nil required set is trivially contained.
func (s TagSet) ContainsAll(required TagSet) bool {
	if len(required) > len(s) {
		return false
	}
	for tag := range required {
		if _, ok := s[tag]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy so callers can never alias part tags.
func (s TagSet) Clone() TagSet {
	if s == nil {
		return nil
	}
	cloned := make(TagSet, len(s))
	for tag := range s {
		cloned[tag] = struct{}{}
	}
	return cloned
}

// Sorted returns the tags in lexicographic order for deterministic output.
func (s TagSet) Sorted() []Tag {
	if len(s) == 0 {
		return nil
	}
	tags := make([]Tag, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// MarshalJSON emits the set as a sorted array so snapshots stay stable.
func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON accepts an array of tags.
func (s *TagSet) UnmarshalJSON(data []byte) error {
	var tags []Tag
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*s = NewTagSet(tags...)
	return nil
}
