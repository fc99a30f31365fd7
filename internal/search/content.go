package search

import (
	"strings"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// stage1Match implements spec.md §4.3.1 step 3: a conversation matches iff
// any phrase occurs as a substring in a searchable message or the title, or
// the keyword condition (any/all) is satisfied over the searchable set and
// the title. If neither phrases nor keywords were given, Stage 1 is
// trivially satisfied.
func stage1Match(title string, msgs []model.Message, q model.SearchQuery) bool {
	if len(q.Phrases) == 0 && len(q.Keywords) == 0 {
		return true
	}
	if matchesAnyPhrase(title, msgs, q.Phrases) {
		return true
	}
	return matchesKeywords(title, msgs, q.Keywords, q.MatchMode)
}

func matchesAnyPhrase(title string, msgs []model.Message, phrases []string) bool {
	if len(phrases) == 0 {
		return false
	}
	lowerTitle := strings.ToLower(title)
	for _, p := range phrases {
		lp := strings.ToLower(p)
		if strings.Contains(lowerTitle, lp) {
			return true
		}
		for _, m := range msgs {
			if strings.Contains(strings.ToLower(m.Content), lp) {
				return true
			}
		}
	}
	return false
}

func matchesKeywords(title string, msgs []model.Message, keywords []string, mode model.MatchMode) bool {
	if len(keywords) == 0 {
		return false
	}
	present := conversationTokenSet(title, msgs)
	if mode == model.MatchAll {
		for _, k := range keywords {
			if _, ok := present[strings.ToLower(k)]; !ok {
				return false
			}
		}
		return true
	}
	for _, k := range keywords {
		if _, ok := present[strings.ToLower(k)]; ok {
			return true
		}
	}
	return false
}

// conversationTokenSet is the set of distinct tokens across the title and
// every searchable message's content, used for keyword/exclusion
// membership tests (spec.md §4.3.1 steps 3-4).
func conversationTokenSet(title string, msgs []model.Message) map[string]struct{} {
	set := tokenSet(Tokenize(title))
	for _, m := range msgs {
		for _, t := range Tokenize(m.Content) {
			set[t] = struct{}{}
		}
	}
	return set
}

// excluded implements spec.md §4.3.1 step 4a: any exclude_keywords token
// occurring anywhere in the searchable set or title discards the
// conversation. Tokenization is identical to keyword matching.
func excluded(title string, msgs []model.Message, excludeKeywords []string) bool {
	if len(excludeKeywords) == 0 {
		return false
	}
	present := conversationTokenSet(title, msgs)
	for _, k := range excludeKeywords {
		if _, ok := present[strings.ToLower(k)]; ok {
			return true
		}
	}
	return false
}

// matchedMessageIDs returns, in source order, the ids of every searchable
// message whose content contains a keyword token or phrase substring.
func matchedMessageIDs(msgs []model.Message, q model.SearchQuery) []string {
	var ids []string
	lowerKeywords := make([]string, len(q.Keywords))
	for i, k := range q.Keywords {
		lowerKeywords[i] = strings.ToLower(k)
	}
	lowerPhrases := make([]string, len(q.Phrases))
	for i, p := range q.Phrases {
		lowerPhrases[i] = strings.ToLower(p)
	}

	for _, m := range msgs {
		lowerContent := strings.ToLower(m.Content)
		matched := false
		for _, p := range lowerPhrases {
			if strings.Contains(lowerContent, p) {
				matched = true
				break
			}
		}
		if !matched && len(lowerKeywords) > 0 {
			tokens := tokenSet(Tokenize(m.Content))
			for _, k := range lowerKeywords {
				if _, ok := tokens[k]; ok {
					matched = true
					break
				}
			}
		}
		if matched {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
