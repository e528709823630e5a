package sumo

import (
	"os"
	"path/filepath"
	"strings"

	"tollsweep/core/scenario"
	"tollsweep/internal/errors"
	"tollsweep/internal/logging"

	"go.uber.org/zap"
)

// DiscoverTripinfos scans a directory for tripinfo output files following
// the scenario naming convention and keys them by decoded toll price.
// Files whose token does not decode are skipped with a log entry.
func DiscoverTripinfos(dir string) (map[scenario.TollPrice]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInternal, "reading scenarios directory", err)
	}

	found := make(map[scenario.TollPrice]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "tripinfo_toll_") || !strings.HasSuffix(name, ".xml") {
			continue
		}

		token := strings.TrimSuffix(strings.TrimPrefix(name, "tripinfo_toll_"), ".xml")
		price, err := scenario.ParseToken(token)
		if err != nil {
			logging.Warn("skipping tripinfo file with undecodable toll token",
				zap.String("file", name), zap.Error(err))
			continue
		}
		found[price] = filepath.Join(dir, name)
	}
	return found, nil
}
