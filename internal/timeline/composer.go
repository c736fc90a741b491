// Package timeline composes the per-followee timeline of the Relaciones
// service: authenticate the requester, read the local follow list, fan out
// one message fetch per followee, and merge the results in followee order.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/capasdev/redsocial/internal/clients"
	"github.com/capasdev/redsocial/internal/models"
)

// ErrUnauthorized means the requester's own identity could not be
// established; no partial timeline is ever returned in that case.
var ErrUnauthorized = errors.New("requester could not be authenticated")

// FollowLister is the slice of the follow store the composer needs.
type FollowLister interface {
	ListFollowees(seguidorUsername string) ([]models.Follow, error)
}

// Composer orchestrates Identity Verifier -> Follow Store -> N parallel
// Message Reader calls -> merge.
type Composer struct {
	users        clients.UserVerifier
	messages     clients.MessageFetcher
	follows      FollowLister
	fetchTimeout time.Duration
}

// NewComposer creates a new Composer. fetchTimeout bounds each individual
// fan-out fetch; a timed-out fetch degrades to an empty entry like any
// other per-followee failure.
func NewComposer(users clients.UserVerifier, messages clients.MessageFetcher, follows FollowLister, fetchTimeout time.Duration) *Composer {
	return &Composer{
		users:        users,
		messages:     messages,
		follows:      follows,
		fetchTimeout: fetchTimeout,
	}
}

// Compose builds the timeline for the requester. The credential is the
// caller's Authorization header value, forwarded unchanged downstream.
//
// Entries come back in the order the followee set was resolved, never in
// fetch-completion order. A failed per-followee fetch yields an entry with
// an empty message list, indistinguishable from a followee who truly
// posted nothing; availability of the aggregate wins over per-entry
// completeness.
func (cp *Composer) Compose(ctx context.Context, requester, credential string) ([]models.TimelineEntry, error) {
	// 1. Authenticate. Any verifier failure is fatal to the whole call.
	if _, err := cp.users.VerifyUser(ctx, requester, credential); err != nil {
		log.Printf("[composer] WARN: could not verify requester %s: %v", requester, err)
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	// 2. Resolve the followee set. Without it no meaningful partial
	// result exists, so store failures propagate.
	follows, err := cp.follows.ListFollowees(requester)
	if err != nil {
		return nil, fmt.Errorf("listing followees of %s: %w", requester, err)
	}
	if len(follows) == 0 {
		// Following nobody is a valid, fully-successful state.
		return []models.TimelineEntry{}, nil
	}

	// 3. Fan out: one concurrent fetch per followee, all launched at
	// once, then wait for every one to settle. Results land in an
	// index-addressed slice so completion order never matters.
	results := make([][]models.TimelineMessage, len(follows))
	var wg sync.WaitGroup
	for i, follow := range follows {
		wg.Add(1)
		go func(i int, followee string) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, cp.fetchTimeout)
			defer cancel()

			mensajes, err := cp.messages.FetchMessages(fetchCtx, followee, credential)
			if err != nil {
				// Absorbed: one bad followee must not poison the response.
				log.Printf("[composer] WARN: fetching messages of %s: %v", followee, err)
				return
			}
			results[i] = mapMensajes(mensajes)
		}(i, follow.UsuarioPrincipalUsername)
	}
	wg.Wait()

	// 4. Merge in followee order.
	entries := make([]models.TimelineEntry, len(follows))
	for i, follow := range follows {
		mensajes := results[i]
		if mensajes == nil {
			mensajes = []models.TimelineMessage{}
		}
		entries[i] = models.TimelineEntry{
			Siguiendo: follow.UsuarioPrincipalUsername,
			Mensajes:  mensajes,
		}
	}
	return entries, nil
}

// mapMensajes drops the author field; it is implied by the entry.
// Order is preserved as returned (newest first by contract).
func mapMensajes(mensajes []models.Mensaje) []models.TimelineMessage {
	mapped := make([]models.TimelineMessage, 0, len(mensajes))
	for _, m := range mensajes {
		mapped = append(mapped, models.TimelineMessage{
			ID:            m.ID.Hex(),
			Contenido:     m.Contenido,
			FechaCreacion: m.FechaCreacion,
		})
	}
	return mapped
}
