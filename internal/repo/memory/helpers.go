package memory

import (
	"sort"
	"strings"

	"github.com/devhire/talenthub/internal/domain/candidate"
)

type window struct {
	lo, hi int
}

// pageSlice clamps an offset/limit pair against the matched result size so an
// out-of-range page yields an empty slice rather than a panic.
func pageSlice(n, offset, limit int) window {
	if offset < 0 {
		offset = 0
	}

	if offset > n {
		offset = n
	}

	hi := n

	if limit > 0 && offset+limit < n {
		hi = offset + limit
	}

	return window{lo: offset, hi: hi}
}

func hasSkill(skills []string, want string) bool {
	want = strings.ToLower(strings.TrimSpace(want))

	for _, s := range skills {
		if strings.ToLower(s) == want {
			return true
		}
	}

	return false
}

func topSkills(counts map[string]int, limit int) []candidate.SkillCount {
	out := make([]candidate.SkillCount, 0, len(counts))

	for skill, n := range counts {
		out = append(out, candidate.SkillCount{Skill: skill, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}
