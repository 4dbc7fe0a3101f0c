package poller

import (
	"math"
	"sort"

	"github.com/mixelka/codefetch/internal/timestamp"
	"github.com/mixelka/codefetch/pkg/models"
)

// Rank returns a new slice with messages ordered newest first by normalized
// create time. Messages whose timestamp cannot be normalized sink to the end.
// The sort is stable, so ties and unparsable entries keep their fetch order.
// The input slice is not modified.
func Rank(msgs []models.Message, timezone string) []models.Message {
	type keyed struct {
		msg models.Message
		ms  int64
	}

	ranked := make([]keyed, len(msgs))
	for i, m := range msgs {
		ms, err := timestamp.Normalize(m.CreateTime, timezone)
		if err != nil {
			ms = math.MinInt64
		}
		ranked[i] = keyed{msg: m, ms: ms}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ms > ranked[j].ms
	})

	out := make([]models.Message, len(ranked))
	for i, k := range ranked {
		out[i] = k.msg
	}
	return out
}
