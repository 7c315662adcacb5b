// Package mockgen produces the synthetic roster the admin console runs on.
// There is no real backend: the generator is the sole source of records.
package mockgen

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wafr/wafradmin/internal/models"
)

const (
	// Phones are Moroccan mobile numbers: +212 6XXXXXXXX
	phonePrefix    = "+212"
	phoneRangeBase = 600000000
	phoneRangeSize = 100000000

	// Roughly one user in ten is blocked
	blockedRatio = 0.1

	createdAtMaxDays  = 90
	lastActiveMaxDays = 30
	txDateMaxDays     = 30
)

type Generator struct {
	// rand.Rand is not safe for concurrent use, transactions are generated
	// per request so the source is guarded
	mu  sync.Mutex
	rnd *rand.Rand
}

func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a generator with the given source. Tests inject a
// fixed seed to pin the output.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Users generates count randomized roster records. Not idempotent: every call
// produces fresh identifiers and fields.
func (g *Generator) Users(count int) []models.User {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	users := make([]models.User, 0, count)

	for i := 0; i < count; i++ {
		users = append(users, models.User{
			ID:    uuid.New(),
			Name:  fmt.Sprintf("User %d", i+1),
			Phone: fmt.Sprintf("%s%d", phonePrefix, phoneRangeBase+g.rnd.Intn(phoneRangeSize)),
			Email: fmt.Sprintf("user%d@example.com", i+1),
			// One decimal place in [0, 10000)
			Balance:    decimal.New(int64(g.rnd.Intn(100000)), -1),
			Blocked:    g.rnd.Float64() < blockedRatio,
			CreatedAt:  now.AddDate(0, 0, -g.rnd.Intn(createdAtMaxDays)),
			LastActive: now.AddDate(0, 0, -g.rnd.Intn(lastActiveMaxDays)),
		})
	}

	return users
}

// Transactions generates count random transactions owned by userID,
// sorted newest first. The description is fixed per kind.
func (g *Generator) Transactions(userID uuid.UUID, count int) []models.Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	kinds := models.Kinds()
	statuses := models.Statuses()

	txs := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		kind := kinds[g.rnd.Intn(len(kinds))]

		txs = append(txs, models.Transaction{
			ID:     uuid.New(),
			UserID: userID,
			// One decimal place in [0, 100)
			Amount:      decimal.New(int64(g.rnd.Intn(1000)), -1),
			Kind:        kind,
			Status:      statuses[g.rnd.Intn(len(statuses))],
			Description: kind.Label(),
			Date:        now.AddDate(0, 0, -g.rnd.Intn(txDateMaxDays)),
		})
	}

	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	return txs
}
