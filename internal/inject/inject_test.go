package inject

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

func TestInject(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "double quoted strict mode",
			src:  `"use strict";rest`,
			want: `"use strict";require("../../app.js");rest`,
		},
		{
			name: "single quoted strict mode",
			src:  `'use strict';Page({})`,
			want: `'use strict';require("../../app.js");Page({})`,
		},
		{
			name: "no strict mode",
			src:  `Page({})`,
			want: `require("../../app.js");Page({})`,
		},
		{
			name: "empty module",
			src:  ``,
			want: `require("../../app.js");`,
		},
		{
			name: "strict mode not at position zero",
			src:  ` "use strict";x`,
			want: `require("../../app.js"); "use strict";x`,
		},
		{
			name: "strict mode later in text is left alone",
			src:  "var a;\n\"use strict\";",
			want: "require(\"../../app.js\");var a;\n\"use strict\";",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inject(tt.src, "../../app.js"))
		})
	}
}

func TestStatement(t *testing.T) {
	assert.Equal(t, `require("./app.js");`, Statement("./app.js"))
}

func TestFile_OverwritesContent(t *testing.T) {
	fs := memfs.New()
	path := "/dist/pages/index/index.js"
	original := `"use strict";Page({data:{}});`
	require.NoError(t, util.WriteFile(fs, path, []byte(original), 0o644))

	require.NoError(t, File(fs, path, "../../app.js"))

	got, err := util.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, `"use strict";require("../../app.js");Page({data:{}});`, string(got))
}

func TestFile_MissingModule(t *testing.T) {
	fs := memfs.New()

	err := File(fs, "/dist/missing.js", "./app.js")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrFilesystem)
}
