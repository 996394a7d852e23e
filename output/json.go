package output

import (
	"context"
	"encoding/json"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/media"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
)

// Manifest is the document written by the json output.
type Manifest struct {
	ID        uuid.UUID              `json:"id" jsonschema:"description=Batch identifier"`
	App       string                 `json:"app"`
	Version   string                 `json:"version"`
	Referer   string                 `json:"referer" jsonschema:"description=Referer header the urls require"`
	SizeBytes int64                  `json:"sizeBytes"`
	Items     []*media.ResolvedMedia `json:"items"`
	Assets    []media.Asset          `json:"assets"`
}

// NewManifest describes b.
func NewManifest(b *media.Batch) *Manifest {
	return &Manifest{
		ID:        b.ID,
		App:       constant.App,
		Version:   constant.Version,
		Referer:   constant.Referer,
		SizeBytes: b.TotalSizeBytes(),
		Items:     b.Items,
		Assets:    b.ExtraAssets,
	}
}

// Schema returns the JSON schema of Manifest.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	return r.Reflect(&Manifest{})
}

// JSON writes the batch as an indented manifest.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Description() string {
	return "Write a JSON manifest with every item, fragment and asset. Type \"dashgrab schema\" for its schema."
}

func (JSON) Run(_ context.Context, b *media.Batch, opts Options) error {
	enc := json.NewEncoder(opts.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(NewManifest(b))
}
