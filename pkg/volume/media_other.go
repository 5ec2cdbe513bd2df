//go:build !unix

package volume

import (
	"os"

	"github.com/moyu-x/photo-importer/internal"
)

func mediaTypeOf(root, vol os.FileInfo) internal.MediaType {
	return internal.MediaUnknown
}
