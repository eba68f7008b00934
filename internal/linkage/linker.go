package linkage

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/models"
	"github.com/bundestweets/bundestweets/pkg/logging"
)

// Linker pairs registry members with social-media accounts by normalized
// name containment.
type Linker struct {
	logger *zap.Logger
}

// NewLinker creates a new record linker
func NewLinker() *Linker {
	return &Linker{logger: logging.WithComponent("linker")}
}

// Link matches every registry member against the account pool and returns a
// merged record per member, keyed by the member's dense input index.
//
// The matching is greedy and order-sensitive: accounts are scanned from
// index 0 and the first whose normalized display name contains both the
// member's first and last token wins. Matched accounts stay in the pool, so
// one account can in principle be claimed by several members whose tokens
// it happens to contain.
//
// names and parties are parallel slices; a length mismatch or a malformed
// registry name is a fatal input-format error.
func (l *Linker) Link(names []string, parties []string, accounts []models.Account) (map[int]models.MemberAccount, error) {
	if len(names) != len(parties) {
		return nil, fmt.Errorf("names and parties length mismatch: %d vs %d", len(names), len(parties))
	}

	pairs, err := TokenizeRealNames(names)
	if err != nil {
		return nil, err
	}

	profileNames := make([]string, len(accounts))
	for i, acc := range accounts {
		profileNames[i] = NormalizeProfileName(acc.DisplayName)
	}

	linked := make(map[int]models.MemberAccount, len(names))
	matched := 0
	for i, pair := range pairs {
		record := models.MemberAccount{
			Member: models.Member{
				RealName: names[i],
				Party:    parties[i],
			},
		}

		for j, profile := range profileNames {
			if strings.Contains(profile, pair.First) && strings.Contains(profile, pair.Last) {
				record.ScreenName = accounts[j].ScreenName
				record.Profile = accounts[j].Raw
				matched++
				break
			}
		}

		linked[i] = record
	}

	l.logger.Info("Record linkage complete",
		zap.Int("members", len(names)),
		zap.Int("accounts", len(accounts)),
		zap.Int("matched", matched))

	return linked, nil
}
