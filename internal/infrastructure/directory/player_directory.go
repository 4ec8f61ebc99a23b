package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	lru "github.com/hashicorp/golang-lru"
)

type playerDirectory struct {
	repo domain.PlayerRepository
}

// NewPlayerDirectory returns a PlayerDirectory reading players from the
// given repository.
func NewPlayerDirectory(repo domain.PlayerRepository) ports.PlayerDirectory {
	return &playerDirectory{repo}
}

func (d *playerDirectory) ResolvePlayer(
	ctx context.Context, playerID string,
) (*domain.Player, error) {
	return d.repo.GetPlayer(ctx, playerID)
}

type cachedPlayer struct {
	player   domain.Player
	cachedAt time.Time
}

type cachedPlayerDirectory struct {
	directory ports.PlayerDirectory
	cache     *lru.Cache
	ttl       time.Duration
	clock     ports.Clock
}

// NewCachedPlayerDirectory wraps the given directory with an LRU cache of at
// most size players, each kept for at most ttl. Trades snapshot the valuation
// at proposal time, so a player is served from the cache only while its entry
// is fresher than ttl. A non-positive size or ttl returns the directory as is.
func NewCachedPlayerDirectory(
	directory ports.PlayerDirectory, size int, ttl time.Duration, clock ports.Clock,
) (ports.PlayerDirectory, error) {
	if size <= 0 || ttl <= 0 {
		return directory, nil
	}
	if clock == nil {
		clock = ports.SystemClock
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create player cache: %w", err)
	}
	return &cachedPlayerDirectory{directory, cache, ttl, clock}, nil
}

func (d *cachedPlayerDirectory) ResolvePlayer(
	ctx context.Context, playerID string,
) (*domain.Player, error) {
	now := d.clock.Now()
	if v, ok := d.cache.Get(playerID); ok {
		if c := v.(cachedPlayer); now.Sub(c.cachedAt) < d.ttl {
			p := c.player
			return &p, nil
		}
		d.cache.Remove(playerID)
	}

	player, err := d.directory.ResolvePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	d.cache.Add(playerID, cachedPlayer{*player, now})
	return player, nil
}
