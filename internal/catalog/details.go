package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// Details promotes an item to a DetailedItem populated up to stage. Sub-requests run
// concurrently and the call fails if any of them fails.
//
//	StageBasic              detail object only
//	StageWithCredits        + credits
//	StageWithMediaAndSocial + videos, similar, recommendations, images, external ids
func (s *Service) Details(ctx context.Context, kind domain.MediaKind, id int, stage domain.DetailStage) (*domain.DetailedItem, error) {
	if !kind.IsCatalog() {
		return nil, fmt.Errorf("details: unsupported media kind %q", kind)
	}

	var (
		raw             tmdb.RawDetail
		credits         domain.Credits
		videos          tmdb.VideoList
		similar         *domain.Page
		recommendations *domain.Page
		images          domain.ImageSet
		externalIDs     domain.ExternalIDs
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(sub string, dest any) {
		g.Go(func() error {
			return s.repo.FetchJSON(gctx, tmdb.DetailPath(kind, id, sub), nil, dest)
		})
	}
	fetchPage := func(sub string, dest **domain.Page) {
		g.Go(func() error {
			p, err := s.repo.FetchCatalogPage(gctx, tmdb.DetailPath(kind, id, sub), nil, kind)
			if err != nil {
				return err
			}
			*dest = p
			return nil
		})
	}

	fetch("", &raw)
	if stage >= domain.StageWithCredits {
		fetch(tmdb.SubCredits, &credits)
	}
	if stage >= domain.StageWithMediaAndSocial {
		fetch(tmdb.SubVideos, &videos)
		fetchPage(tmdb.SubSimilar, &similar)
		fetchPage(tmdb.SubRecommendations, &recommendations)
		fetch(tmdb.SubImages, &images)
		fetch(tmdb.SubExternalIDs, &externalIDs)
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load details", "kind", kind, "id", id, "stage", stage, "error", err)
		return nil, err
	}

	item := tmdb.NormalizeDetail(raw, kind)
	if stage >= domain.StageWithCredits {
		item.Credits = &credits
	}
	if stage >= domain.StageWithMediaAndSocial {
		item.Videos = videos.Results
		if item.Videos == nil {
			item.Videos = []domain.Video{}
		}
		item.Similar = similar
		item.Recommendations = recommendations
		item.Images = &images
		item.ExternalIDs = &externalIDs
	}
	return &item, nil
}
