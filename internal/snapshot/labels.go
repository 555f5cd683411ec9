package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ALT-F4-LLC/hours/internal/ingest"
	"github.com/ALT-F4-LLC/hours/internal/model"
)

// ProductPrefix marks a product token inside a label description.
const ProductPrefix = "produkt-"

// ProductFromDescription derives a product tag from a label description. The
// description is lower-cased, stripped and split on spaces; the first token
// containing ProductPrefix yields the text after the prefix.
func ProductFromDescription(description string) (string, bool) {
	desc := strings.ToLower(strings.TrimSpace(description))
	if !strings.Contains(desc, ProductPrefix) {
		return "", false
	}
	for _, tok := range strings.Split(desc, " ") {
		if i := strings.Index(tok, ProductPrefix); i >= 0 {
			return tok[i+len(ProductPrefix):], true
		}
	}
	return "", false
}

// labelTitle normalizes a label title for attachment.
func labelTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func (s *Snapshot) attachLabels() error {
	issueSets := make(map[int]map[string]struct{})
	mrSets := make(map[int]map[string]struct{})
	s.issueProducts = make(map[int]string)
	s.mrProducts = make(map[int]string)

	for i, link := range s.idx.LabelLinks {
		ref := fmt.Sprintf("label link %d", link.ID)
		label, ok := s.idx.Labels[link.LabelID]
		if !ok {
			return &UnresolvedError{Kind: KindLabel, ID: link.LabelID, Ref: ref}
		}
		title := labelTitle(label.Title)
		product, hasProduct := ProductFromDescription(label.Description)

		var sets map[int]map[string]struct{}
		var products map[int]string
		switch link.TargetType {
		case model.TargetIssue:
			if _, ok := s.idx.Issues[link.TargetID]; !ok {
				return &UnresolvedError{Kind: KindIssue, ID: link.TargetID, Ref: ref}
			}
			sets, products = issueSets, s.issueProducts
		case model.TargetMergeRequest:
			if _, ok := s.idx.MergeRequests[link.TargetID]; !ok {
				return &UnresolvedError{Kind: KindMergeRequest, ID: link.TargetID, Ref: ref}
			}
			sets, products = mrSets, s.mrProducts
		default:
			return &ingest.MalformedRowError{
				Table:  ingest.TableLabelLinks,
				Row:    i + 1,
				Field:  "target_type",
				Value:  string(link.TargetType),
				Reason: "unknown target type",
				Err:    model.ValidateTargetType(link.TargetType),
			}
		}

		set, ok := sets[link.TargetID]
		if !ok {
			set = make(map[string]struct{})
			sets[link.TargetID] = set
		}
		set[title] = struct{}{}

		// First product wins; later links never override it.
		if _, seen := products[link.TargetID]; hasProduct && !seen {
			products[link.TargetID] = product
		}
	}

	s.issueLabels = sortedSets(issueSets)
	s.mrLabels = sortedSets(mrSets)
	return nil
}

func sortedSets(sets map[int]map[string]struct{}) map[int][]string {
	out := make(map[int][]string, len(sets))
	for id, set := range sets {
		titles := make([]string, 0, len(set))
		for t := range set {
			titles = append(titles, t)
		}
		sort.Strings(titles)
		out[id] = titles
	}
	return out
}
