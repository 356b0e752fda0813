// Copyright 2026 Lorekeep Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"sort"

	"github.com/lorekeep/lorekeep/core"
)

// hybridEntry accumulates per-note scores during rank fusion.
type hybridEntry struct {
	note          *core.Note
	semanticScore float64
	lexicalScore  float64
}

// Hybrid runs semantic and lexical searches independently over 2*topK
// candidates each, converts result ranks into scores, and fuses them
// into one ordered list.
//
// Each list assigns its notes a rank-derived score 1 - rank/len, so the
// top hit scores near 1.0 and scores descend linearly. A note absent
// from one list scores 0 for that component. The combined score is
// weight*semantic + (1-weight)*lexical, sorted descending with a stable
// tie-break on discovery order (semantic list first). When a note
// appears in both lists, the instance from the list that supplied it
// first is returned.
func (e *Engine) Hybrid(ctx context.Context, query string, semanticWeight float64, topK int) ([]*core.SearchResult, error) {
	if semanticWeight < 0 || semanticWeight > 1 {
		return nil, ErrInvalidWeight
	}

	fetch := 2 * topK

	semantic, err := e.Semantic(ctx, query, fetch)
	if err != nil {
		return nil, err
	}

	lexical, err := e.Lexical(ctx, query, fetch)
	if err != nil {
		return nil, err
	}

	entries := make(map[core.ID]*hybridEntry)
	var ids []core.ID

	for i, result := range semantic {
		score := 1.0 - float64(i)/float64(len(semantic))
		entries[result.Note.Id] = &hybridEntry{
			note:          result.Note,
			semanticScore: score,
		}
		ids = append(ids, result.Note.Id)
	}

	for i, note := range lexical {
		score := 1.0 - float64(i)/float64(len(lexical))
		if entry, ok := entries[note.Id]; ok {
			entry.lexicalScore = score
			continue
		}
		entries[note.Id] = &hybridEntry{
			note:         note,
			lexicalScore: score,
		}
		ids = append(ids, note.Id)
	}

	// Build in discovery order so the stable sort's tie-break is correct
	fused := make([]*core.SearchResult, 0, len(ids))
	for _, id := range ids {
		entry := entries[id]
		combined := semanticWeight*entry.semanticScore + (1-semanticWeight)*entry.lexicalScore
		fused = append(fused, &core.SearchResult{
			Note:  entry.note,
			Score: combined,
		})
	}

	// Stable sort keeps discovery order for equal scores
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	if topK > 0 && len(fused) > topK {
		fused = fused[:topK]
	}

	e.logger.Debug("hybrid search complete",
		"query", query,
		"semantic", len(semantic),
		"lexical", len(lexical),
		"fused", len(fused))

	return fused, nil
}
