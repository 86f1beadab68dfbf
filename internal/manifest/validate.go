package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"github.com/tidwall/jsonc"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Kind selects which manifest shape to validate against.
type Kind string

const (
	// KindSource is the bundle being turned into a subpackage.
	KindSource Kind = "Source"

	// KindTarget is the bundle receiving the subpackage.
	KindTarget Kind = "Target"
)

func loadSchema() (*cue.Context, cue.Value, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, cue.Value{}, fmt.Errorf("compiling manifest schema: %w", err)
	}
	return ctx, schema, nil
}

// Validate checks that data has the structure the merge relies on.
// Duplicate keys resolve to the last value, as they do in Parse.
// Failures wrap ErrManifestParse.
func Validate(kind Kind, data []byte) error {
	ctx, schema, err := loadSchema()
	if err != nil {
		return err
	}

	def := schema.LookupPath(cue.ParsePath("#" + string(kind)))
	if !def.Exists() {
		return fmt.Errorf("unknown manifest kind %q", kind)
	}

	var v any
	if err := json.Unmarshal(jsonc.ToJSON(data), &v); err != nil {
		return oerrors.WrapCause(oerrors.ErrManifestParse, "parsing app.json", err)
	}
	doc := ctx.Encode(v)
	if err := doc.Err(); err != nil {
		return oerrors.WrapCause(oerrors.ErrManifestParse, "encoding app.json", err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return oerrors.WrapCause(oerrors.ErrManifestParse,
			fmt.Sprintf("%s manifest does not match schema", kind), flatten(err))
	}
	return nil
}

// flatten joins the individual CUE errors into a single readable error.
func flatten(err error) error {
	list := errors.Errors(err)
	if len(list) <= 1 {
		return err
	}
	msgs := make([]string, 0, len(list))
	for _, e := range list {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
