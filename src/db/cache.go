package db

import (
	"log"
	"time"

	"github.com/dgraph-io/ristretto"

	"fintrack-server/src/models"
)

// Cache holds authenticated user records so the JWT middleware does not hit
// the database on every request. Aggregates (spent, dashboard, analytics) are
// never cached: they must always reflect the ledger at call time.
var Cache *ristretto.Cache

const userCacheTTL = 5 * time.Minute

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func userCacheKey(userID string) string {
	return "user:" + userID
}

func SetUserCache(user *models.User) {
	if Cache == nil {
		return
	}
	Cache.SetWithTTL(userCacheKey(user.ID), user, 1, userCacheTTL)
}

func GetUserCache(userID string) (*models.User, bool) {
	if Cache == nil {
		return nil, false
	}
	value, found := Cache.Get(userCacheKey(userID))
	if !found {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// DelUserCache evicts a user after any mutation (pin change, pro upgrade) so
// the next request sees the fresh record.
func DelUserCache(userID string) {
	if Cache == nil {
		return
	}
	Cache.Del(userCacheKey(userID))
}
