package pricing

import (
	"log/slog"
	"math"
	"sort"

	"github.com/dorive/FiggieMachine/internal/domain"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

// maxRestingPrice is the highest price the venue accepts for an order.
const maxRestingPrice = 99

// AdjustedQuotes widens the neutral quotes by information state: with few
// of the 40 cards seen the bid shrinks toward zero and the ask inflates up
// to double, both converging to the neutral quote as the deck is revealed.
// Absent sides collapse to the book sentinels. A crossed result is reported
// but not corrected; downstream comparisons tolerate it.
func AdjustedQuotes(neutral domain.QuoteSet, nSeenCards int) domain.AdjQuoteSet {
	var adj domain.AdjQuoteSet
	seen := float64(nSeenCards) / float64(cards.DeckSize)

	for s := range adj {
		adj[s] = domain.AdjLevel{Bid: cards.NoBid, Ask: cards.NoAsk}

		if neutral[s].HasBid {
			adj[s].Bid = int(math.Floor(neutral[s].Bid * seen))
		}
		if neutral[s].HasAsk {
			adj[s].Ask = int(math.Ceil(neutral[s].Ask * (1 + (1 - seen))))
		}

		if adj[s].Ask <= adj[s].Bid {
			slog.Warn("Adjusted quotes crossed",
				"suit", cards.Suit(s), "bid", adj[s].Bid, "ask", adj[s].Ask)
		}
	}
	return adj
}

// TakingOrder scans the book for resting interest priced through our
// adjusted quotes and returns the single candidate with the greatest edge.
// The edge sums the book-versus-adjusted spread and the adjustment margin
// back to the neutral quote.
func TakingOrder(book domain.BookSnapshot, neutral domain.QuoteSet, adj domain.AdjQuoteSet) (domain.OrderIntent, bool) {
	var best domain.OrderIntent
	found := false

	consider := func(o domain.OrderIntent) {
		if !found || o.Edge > best.Edge {
			best = o
			found = true
		}
	}

	for _, s := range cards.Suits {
		if book[s].Bid >= adj[s].Ask && adj[s].Ask != cards.NoAsk {
			edge := float64(book[s].Bid-adj[s].Ask) + (float64(adj[s].Ask) - neutral[s].Ask)
			consider(domain.OrderIntent{
				Direction: cards.Sell,
				Suit:      s,
				Price:     book[s].Bid,
				Edge:      edge,
			})
		}

		if book[s].Ask <= adj[s].Bid && adj[s].Bid != cards.NoBid {
			edge := float64(adj[s].Bid-book[s].Ask) + (neutral[s].Bid - float64(adj[s].Bid))
			consider(domain.OrderIntent{
				Direction: cards.Buy,
				Suit:      s,
				Price:     book[s].Ask,
				Edge:      edge,
			})
		}
	}

	return best, found
}

// LimitingOrders returns the up-to-four resting order candidates with the
// greatest edge: asks no higher than the venue's price cap and bids above
// zero, each priced at the adjusted quote.
func LimitingOrders(neutral domain.QuoteSet, adj domain.AdjQuoteSet) []domain.OrderIntent {
	var candidates []domain.OrderIntent

	for _, s := range cards.Suits {
		if adj[s].Ask <= maxRestingPrice {
			candidates = append(candidates, domain.OrderIntent{
				Direction: cards.Sell,
				Suit:      s,
				Price:     adj[s].Ask,
				Edge:      float64(adj[s].Ask) - neutral[s].Ask,
			})
		}
		if adj[s].Bid > 0 {
			candidates = append(candidates, domain.OrderIntent{
				Direction: cards.Buy,
				Suit:      s,
				Price:     adj[s].Bid,
				Edge:      neutral[s].Bid - float64(adj[s].Bid),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Edge > candidates[j].Edge
	})
	if len(candidates) > 4 {
		candidates = candidates[:4]
	}
	return candidates
}
