package grounding

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/careerlockin/careerlockin/internal/linkcheck"
	"github.com/careerlockin/careerlockin/internal/types"
)

// URLVerifier probes a URL's live reachability. *linkcheck.Verifier satisfies
// this; tests substitute fakes.
type URLVerifier interface {
	Verify(ctx context.Context, url string) linkcheck.Result
}

// VerifyReachability probes every non-fallback resource concurrently and
// finalizes verification statuses. An inconclusive probe downgrades the
// tentative verified status to unverified; a conclusive one confirms
// verified. Fallback resources are safe by construction and skipped.
//
// A cancelled context aborts the pass with the context error; a probe
// outcome observed after cancellation is discarded rather than finalized,
// since it says nothing about the URL.
//
// Each goroutine writes only its own resource, so the fan-out needs no
// locking and completion order cannot affect the final structure.
func VerifyReachability(ctx context.Context, roadmap *types.Roadmap, verifier URLVerifier) error {
	g, ctx := errgroup.WithContext(ctx)

	roadmap.EachResource(func(_ *types.Step, res *types.Resource) {
		if res.Verification == types.StatusFallback {
			return
		}
		g.Go(func() error {
			result := verifier.Verify(ctx, res.URL)
			if err := ctx.Err(); err != nil {
				return err
			}
			if result.Status == linkcheck.StatusUnknown && res.Verification == types.StatusVerified {
				res.Verification = types.StatusUnverified
			}
			return nil
		})
	})

	return g.Wait()
}
