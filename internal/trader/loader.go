package trader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/validation"
)

// TraderFile is the on-disk layout of one file under configs/traders/.
type TraderFile struct {
	Version string               `json:"version"`
	Base    domain.TraderBase    `json:"base"`
	Assort  []domain.AssortEntry `json:"assort"`
}

// LoadDir validates every trader file in dir against schemaPath and registers it.
// Files load in name order so registration order is stable.
func LoadDir(v validation.SchemaValidator, dir, schemaPath string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadDirFmt, dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), TraderFileExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	store := NewStore()
	listings := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		var f TraderFile
		if err := v.LoadFile(path, schemaPath, &f); err != nil {
			return nil, fmt.Errorf(ErrMsgLoadTraderFmt, path, err)
		}
		if err := store.Register(f.Base, f.Assort); err != nil {
			return nil, fmt.Errorf(ErrMsgLoadTraderFmt, path, err)
		}
		listings += len(f.Assort)
	}

	logger.Info(LogMsgTradersLoaded, "traders", len(names), "listings", listings)
	return store, nil
}
