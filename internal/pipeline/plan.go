package pipeline

import (
	"fmt"
	"strconv"

	"github.com/harrison/ethogram/internal/config"
	"github.com/harrison/ethogram/internal/models"
)

// PlanFiles assigns a treatment condition to each sheet path.
// In sequence mode the n-th file gets "n"; in filename mode a file gets its
// name without extension, and two files with the same stem are rejected.
func PlanFiles(paths []string, mode string) ([]models.SheetFile, error) {
	files := make([]models.SheetFile, 0, len(paths))
	owners := make(map[string]string)

	for i, path := range paths {
		file := models.SheetFile{Path: path}
		switch mode {
		case config.TreatmentSequence, "":
			file.Treatment = strconv.Itoa(i + 1)
		case config.TreatmentFilename:
			file.Treatment = file.Stem()
		default:
			return nil, fmt.Errorf("invalid treatment_mode %q", mode)
		}

		if prev, ok := owners[file.Treatment]; ok {
			return nil, fmt.Errorf("treatment %q is assigned to both %s and %s", file.Treatment, prev, file.Name())
		}
		owners[file.Treatment] = file.Name()
		files = append(files, file)
	}
	return files, nil
}
