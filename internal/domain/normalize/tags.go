package normalize

import (
	"strings"

	"github.com/okian/pitchline/internal/domain/model"
)

// tagFields are the known provider aliases for tag arrays.
var tagFields = []string{"tags", "labels"}

// heuristicTagKeywords maps note substrings to tag names emitted by the
// heuristic path.
var heuristicTagKeywords = []struct {
	keyword string
	tag     string
}{
	{"own goal", "own goal"},
	{"penalty", "penalty"},
	{"header", "header"},
	{"free kick", "free kick"},
	{"free-kick", "free kick"},
	{"long range", "long range"},
	{"counter", "counter attack"},
	{"var", "var"},
	{"injury", "injury"},
}

// ExtractTags builds the event tag set. Provider tags win over
// heuristic ones, but an empty provider array must not suppress a
// non-empty heuristic result.
func ExtractTags(raw model.RawEventRecord, note string) []model.Tag {
	if provider := providerTags(raw); len(provider) > 0 {
		return provider
	}
	return heuristicTags(note)
}

func providerTags(raw model.RawEventRecord) []model.Tag {
	for _, field := range tagFields {
		v, present := raw[field]
		if !present {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		var tags []model.Tag
		for _, item := range arr {
			switch t := item.(type) {
			case string:
				if t != "" {
					tags = append(tags, model.Tag{Name: t, Source: model.TagProvider})
				}
			case map[string]any:
				name, _ := t["name"].(string)
				if name == "" {
					continue
				}
				tag := model.Tag{Name: name, Source: model.TagProvider}
				if conf, okc := t["confidence"].(float64); okc {
					tag.Confidence = conf
				}
				if src, oks := t["source"].(string); oks && src == string(model.TagModel) {
					tag.Source = model.TagModel
				}
				tags = append(tags, tag)
			}
		}
		if len(tags) > 0 {
			return tags
		}
		// An explicitly empty provider array falls through to heuristics.
	}
	return nil
}

func heuristicTags(note string) []model.Tag {
	folded := strings.ToLower(note)
	if folded == "" {
		return nil
	}
	var tags []model.Tag
	for _, kw := range heuristicTagKeywords {
		if strings.Contains(folded, kw.keyword) {
			tags = append(tags, model.Tag{Name: kw.tag, Source: model.TagHeuristic})
		}
	}
	return tags
}
