package creatives

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"adsync/internal/cache"
	"adsync/internal/logging"
	"adsync/internal/services"
	"adsync/internal/services/drive"
)

// DiscoveryTTL bounds how long a package's discovered asset list is reused
// before the store is listed again. It exists to absorb repeated lookups
// within one operator action.
const DiscoveryTTL = 60 * time.Second

// Discoverer locates the creative assets of a package in the file store.
type Discoverer struct {
	store        drive.Lister
	rootFolderID string
	cache        *cache.Cache
	ttl          time.Duration
	logger       *slog.Logger
}

// NewDiscoverer builds a Discoverer. The cache may be nil, in which case every
// call lists the store.
func NewDiscoverer(store drive.Lister, rootFolderID string, memo *cache.Cache, logger *slog.Logger) *Discoverer {
	return &Discoverer{
		store:        store,
		rootFolderID: rootFolderID,
		cache:        memo,
		ttl:          DiscoveryTTL,
		logger:       logging.NewComponentLogger(logger, "discovery"),
	}
}

// WithTTL overrides the discovery reuse window. Non-positive values are
// ignored.
func (d *Discoverer) WithTTL(ttl time.Duration) *Discoverer {
	if ttl > 0 {
		d.ttl = ttl
	}
	return d
}

// Discover returns the ordered asset list for the package: exact-name folder
// match under the root, variant subfolders 1-5, files classified by aspect
// prefix and extension. The result is cached per package id.
func (d *Discoverer) Discover(ctx context.Context, packageID string) ([]Asset, error) {
	key := cache.DiscoveryKey(packageID)
	if d.cache != nil {
		if cached, ok := d.cache.Get(key); ok {
			return cached.([]Asset), nil
		}
	}

	folders, err := d.store.ListChildren(ctx, d.rootFolderID, packageID)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "discovery", "list root", "locate package folder", err)
	}
	var packageFolder *drive.File
	for i := range folders {
		if folders[i].Folder && folders[i].Name == packageID {
			packageFolder = &folders[i]
			break
		}
	}
	if packageFolder == nil {
		return nil, services.Wrap(services.ErrNotFound, "discovery", "locate", "no folder named "+packageID, nil)
	}

	variants, err := d.store.ListChildren(ctx, packageFolder.ID, "")
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "discovery", "list package", "list variant folders", err)
	}

	var assets []Asset
	for _, folder := range variants {
		if !folder.Folder {
			continue
		}
		variant, ok := parseVariant(folder.Name)
		if !ok {
			d.logger.Debug("skipping unrecognized folder", logging.String("name", folder.Name))
			continue
		}

		files, err := d.store.ListChildren(ctx, folder.ID, "")
		if err != nil {
			return nil, services.Wrap(services.ErrTransport, "discovery", "list variant", folder.Name, err)
		}
		for _, file := range files {
			if file.Folder {
				continue
			}
			aspect, ok := parseAspect(file.Name)
			if !ok {
				d.logger.Debug("skipping file without aspect prefix", logging.String("name", file.Name))
				continue
			}
			kind, ok := classifyKind(file.Name)
			if !ok {
				d.logger.Debug("skipping file with unrecognized extension", logging.String("name", file.Name))
				continue
			}
			assets = append(assets, Asset{
				FileID:   file.ID,
				Name:     file.Name,
				MimeType: file.MimeType,
				Size:     file.Size,
				Variant:  variant,
				Aspect:   aspect,
				Kind:     kind,
			})
		}
	}

	if len(assets) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "discovery", "classify", "package "+packageID+" has no recognized assets", nil)
	}

	sort.Slice(assets, func(i, j int) bool {
		if assets[i].Variant != assets[j].Variant {
			return assets[i].Variant < assets[j].Variant
		}
		if assets[i].Aspect != assets[j].Aspect {
			return assets[i].Aspect < assets[j].Aspect
		}
		return assets[i].Name < assets[j].Name
	})

	d.logger.Debug("discovered package assets",
		logging.String(logging.FieldPackageID, packageID),
		logging.Int("asset_count", len(assets)))

	if d.cache != nil {
		d.cache.SetTTL(key, assets, d.ttl)
	}
	return assets, nil
}
