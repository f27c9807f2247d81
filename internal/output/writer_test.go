package output

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ec2ctl/internal/cmdlet"
)

type volume struct {
	VolumeID string
	Size     *int32
	Zone     *string
	Tags     []string
}

type listResponse struct {
	Volumes        []volume
	NextToken      *string
	ResultMetadata middleware.Metadata
}

func newTestWriter(format Format) (*Writer, *bytes.Buffer, *bytes.Buffer) {
	var out, notes bytes.Buffer
	return NewWriter(format, &out, &notes), &out, &notes
}

func emit(t *testing.T, w *Writer, envelopes ...cmdlet.Envelope) {
	t.Helper()
	for _, e := range envelopes {
		require.NoError(t, w.Emit(context.Background(), e))
	}
}

func sampleResponse() *listResponse {
	return &listResponse{
		Volumes: []volume{
			{VolumeID: "vol-1", Size: aws.Int32(8), Tags: []string{"a", "b"}},
			{VolumeID: "vol-2", Zone: aws.String("eu-west-1a")},
		},
	}
}

func TestWriter_JSON(t *testing.T) {
	w, out, notes := newTestWriter(FormatJSON)

	emit(t, w, cmdlet.Success(sampleResponse(), nil))

	assert.Equal(t, `{
    "Volumes": [
        {
            "Size": 8,
            "Tags": [
                "a",
                "b"
            ],
            "VolumeID": "vol-1"
        },
        {
            "VolumeID": "vol-2",
            "Zone": "eu-west-1a"
        }
    ]
}
`, out.String())
	assert.Empty(t, notes.String())
}

func TestWriter_YAMLDocuments(t *testing.T) {
	w, out, _ := newTestWriter(FormatYAML)

	emit(t, w,
		cmdlet.Success([]volume{{VolumeID: "vol-1"}}, nil),
		cmdlet.Success([]volume{{VolumeID: "vol-2"}}, nil),
	)

	assert.Equal(t, "- VolumeID: vol-1\n---\n- VolumeID: vol-2\n", out.String())
}

func TestWriter_Text(t *testing.T) {
	w, out, _ := newTestWriter(FormatText)

	emit(t, w, cmdlet.Success(sampleResponse(), nil))

	assert.Equal(t, `Volumes:
  [0]
    Size: 8
    Tags:
      - a
      - b
    VolumeID: vol-1
  [1]
    VolumeID: vol-2
    Zone: eu-west-1a
`, out.String())
}

func TestWriter_TextScalars(t *testing.T) {
	w, out, _ := newTestWriter(FormatText)

	emit(t, w,
		cmdlet.Success([]string{"i-1", "i-2"}, nil),
		cmdlet.Success("vol-9", nil),
	)

	assert.Equal(t, "i-1\ni-2\n\nvol-9\n", out.String())
}

func TestWriter_NotesGoToSeparateStream(t *testing.T) {
	w, out, notes := newTestWriter(FormatJSON)

	emit(t, w, cmdlet.Success([]string{"vol-1"}, nil, cmdlet.Note{Name: cmdlet.NoteNextToken, Value: "tok-2"}))

	assert.Equal(t, "[\n    \"vol-1\"\n]\n", out.String())
	assert.Equal(t, "NextToken: tok-2\n", notes.String())
}

func TestWriter_SkipsFailuresAndEmptyOutput(t *testing.T) {
	w, out, notes := newTestWriter(FormatJSON)

	emit(t, w,
		cmdlet.Failure(errors.New("boom")),
		cmdlet.Success(nil, struct{}{}),
	)

	assert.Empty(t, out.String())
	assert.Empty(t, notes.String())
}

func TestWriter_EmptyListings(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{format: FormatJSON, want: "[]\n[]\n"},
		{format: FormatYAML, want: "[]\n---\n[]\n"},
		{format: FormatText, want: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, out, _ := newTestWriter(tt.format)

			emit(t, w,
				cmdlet.Success([]types.Volume(nil), nil),
				cmdlet.Success([]types.Volume{}, nil),
			)

			assert.Equal(t, tt.want, out.String())
			assert.NotContains(t, out.String(), "null")
			assert.NotContains(t, out.String(), "<nil>")
		})
	}
}

func TestWriter_TextEmptyListingKeepsSeparators(t *testing.T) {
	w, out, _ := newTestWriter(FormatText)

	emit(t, w,
		cmdlet.Success([]string{"vol-1"}, nil),
		cmdlet.Success([]string(nil), nil),
		cmdlet.Success([]string{"vol-2"}, nil),
	)

	assert.Equal(t, "vol-1\n\nvol-2\n", out.String())
}

func TestWriter_NilProjectionWritesNothing(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatText} {
		t.Run(string(format), func(t *testing.T) {
			w, out, _ := newTestWriter(format)

			emit(t, w, cmdlet.Success((*types.VolumeModification)(nil), nil))

			assert.Empty(t, out.String())
		})
	}
}

func TestWriter_SDKShape(t *testing.T) {
	w, out, _ := newTestWriter(FormatText)

	emit(t, w, cmdlet.Success(&types.VolumeAttachment{
		VolumeId:   aws.String("vol-1"),
		InstanceId: aws.String("i-1"),
		Device:     aws.String("/dev/sdf"),
		State:      types.VolumeAttachmentStateAttaching,
	}, nil))

	assert.Contains(t, out.String(), "State: attaching\n")
	assert.Contains(t, out.String(), "VolumeId: vol-1\n")
	assert.NotContains(t, out.String(), "AttachTime")
}

func TestNormalize_StripsResultMetadata(t *testing.T) {
	resp := sampleResponse()
	resp.NextToken = aws.String("")

	v, ok, err := normalize(resp)
	require.NoError(t, err)
	require.True(t, ok)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, m, "ResultMetadata")
	assert.NotContains(t, m, "NextToken")
	assert.Contains(t, m, "Volumes")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "json", want: FormatJSON},
		{input: "YAML", want: FormatYAML},
		{input: "Text", want: FormatText},
		{input: "table", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "json, yaml, text")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
