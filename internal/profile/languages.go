package profile

import "sort"

const maxLanguages = 10

type LanguageWeight struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// LanguageWeights is ordered by weight, heaviest first.
type LanguageWeights []LanguageWeight

// Names returns up to n language names in weight order. n <= 0 means all.
func (lw LanguageWeights) Names(n int) []string {
	if n <= 0 || n > len(lw) {
		n = len(lw)
	}
	names := make([]string, 0, n)
	for _, l := range lw[:n] {
		names = append(names, l.Name)
	}
	return names
}

// Weight returns the weight of name or 0.
func (lw LanguageWeights) Weight(name string) int {
	for _, l := range lw {
		if l.Name == name {
			return l.Weight
		}
	}
	return 0
}

// ComputeLanguageWeights scores every repository language with
// 1 + stars + forks + size/1000 and keeps the ten heaviest. Ties keep the
// order in which languages were first seen.
func ComputeLanguageWeights(repos []Repository) LanguageWeights {
	index := make(map[string]int)
	weights := make(LanguageWeights, 0)

	for _, repo := range repos {
		if repo.Language == nil || *repo.Language == "" {
			continue
		}
		w := 1 + repo.Stars + repo.Forks + repo.Size/1000

		lang := *repo.Language
		if i, ok := index[lang]; ok {
			weights[i].Weight += w
			continue
		}
		index[lang] = len(weights)
		weights = append(weights, LanguageWeight{Name: lang, Weight: w})
	}

	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Weight > weights[j].Weight
	})

	if len(weights) > maxLanguages {
		weights = weights[:maxLanguages]
	}
	return weights
}
