package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer/mixertest"
)

func discovered(t *testing.T, s *mixertest.Surface) *mixer.Mixer {
	t.Helper()
	m := mixer.New()
	require.NoError(t, mixer.Discover(context.Background(), m, s))
	return m
}

func TestRoundTrip(t *testing.T) {
	edited := discovered(t, mixertest.Scarlett())
	edited.Master.Volume.Set(42)
	edited.Master.Muted.Set(true)
	edited.InternalValidity.Set(false)
	require.NoError(t, edited.SampleClockSource.Set("ADAT"))
	row, _ := edited.MatrixEntry(1)
	require.NoError(t, row.Source.Set("Mix B"))
	mixA, _ := row.Mix("A")
	mixA.Set(7)
	out, _ := edited.OutputGain(2)
	out.Muted.Set(false)
	require.NoError(t, out.RightSource.Set("Off"))

	data, err := Marshal(FromMixer(edited))
	require.NoError(t, err)

	doc, err := Unmarshal(data)
	require.NoError(t, err)

	fresh := discovered(t, mixertest.Scarlett())
	require.NoError(t, Apply(fresh, doc))

	assert.Equal(t, FromMixer(edited), FromMixer(fresh))
}

func TestFromMixerDoesNotMutate(t *testing.T) {
	m := discovered(t, mixertest.Scarlett())
	before := FromMixer(m)
	_ = FromMixer(m)
	assert.Equal(t, before, FromMixer(m))
}

func TestEncodeLayout(t *testing.T) {
	m := discovered(t, mixertest.Scarlett())

	var sb strings.Builder
	require.NoError(t, Encode(&sb, FromMixer(m)))
	text := sb.String()

	assert.True(t, strings.HasPrefix(text, "internal-validity: true\n"))
	assert.Contains(t, text, "usb-sync-status: Locked\n")
	assert.Contains(t, text, "master-gain:\n  volume: 100\n  muted: false\n")
	assert.Contains(t, text, `number: "01"`)
	assert.Contains(t, text, "left-source: PCM 1")
	assert.Less(t, strings.Index(text, "matrix:"), strings.Index(text, "input-captures:"))
	assert.Less(t, strings.Index(text, "input-captures:"), strings.Index(text, "output-gains:"))
}

const minimal = `
internal-validity: true
spdif-validity: false
adat-validity: false
usb-sync-status: Locked
sample-clock-source: Internal
sample-sync-status: No Lock
master-gain:
  volume: 90
  muted: true
matrix:
  - number: 1
    source: PCM 2
    mixes:
      - name: B
        volume: 11
input-captures:
  - channel: "2"
    source: Analog 1
output-gains:
  - channel: 01
    volume: 70
    muted: true
    right-source: PCM 4
`

func TestApplyMinimal(t *testing.T) {
	m := discovered(t, mixertest.Scarlett())
	doc, err := Unmarshal([]byte(minimal))
	require.NoError(t, err)
	require.NoError(t, Apply(m, doc))

	assert.Equal(t, 90, m.Master.Volume.Get())
	assert.True(t, m.Master.Muted.Get())

	row, _ := m.MatrixEntry(1)
	assert.Equal(t, "PCM 2", row.Source.Get())
	b, _ := row.Mix("B")
	assert.Equal(t, 11, b.Get())
	a, _ := row.Mix("A")
	assert.Equal(t, 51, a.Get(), "mixes absent from the document keep their value")

	in, _ := m.InputCapture(2)
	assert.Equal(t, "Analog 1", in.Source.Get())

	out, _ := m.OutputGain(1)
	assert.Equal(t, 70, out.Volume.Get())
	assert.Equal(t, "Off", out.LeftSource.Get())
	assert.Equal(t, "PCM 4", out.RightSource.Get())

	assert.Equal(t, "Locked", m.SampleClockSync.Get(), "sample-sync-status is read-only")
}

func TestApplyNullSourceDefaultsOff(t *testing.T) {
	m := discovered(t, mixertest.Scarlett())
	doc, err := Unmarshal([]byte(strings.Replace(minimal, "right-source: PCM 4", "right-source: null", 1)))
	require.NoError(t, err)
	require.NoError(t, Apply(m, doc))

	out, _ := m.OutputGain(1)
	assert.Equal(t, "Off", out.RightSource.Get())
}

func TestApplyKeyForms(t *testing.T) {
	s := mixertest.Scarlett()
	s.AddEnumerated("Matrix 05 Input Playback Route", 0, mixertest.Sources...)

	for _, number := range []string{"5", `"5"`, `"05"`, "05"} {
		t.Run(number, func(t *testing.T) {
			m := discovered(t, s)
			doc := FromMixer(m)
			raw, err := Marshal(doc)
			require.NoError(t, err)

			text := strings.Replace(string(raw), `number: "05"`, "number: "+number, 1)
			text = strings.Replace(text, `source: "Off"`, "source: PCM 3", 1)
			doc, err = Unmarshal([]byte(text))
			require.NoError(t, err)
			require.NoError(t, Apply(m, doc))

			row, ok := m.MatrixEntry("05")
			require.True(t, ok)
			assert.Equal(t, "PCM 3", row.Source.Get())
		})
	}
}

func TestApplyUnknownRow(t *testing.T) {
	m := discovered(t, mixertest.Scarlett())
	doc, err := Unmarshal([]byte(strings.Replace(minimal, "number: 1", `number: "99"`, 1)))
	require.NoError(t, err)

	err = Apply(m, doc)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryUnknownKey))
	ce, _ := errors.AsClassified(err)
	row, _ := ce.Context().GetString("row")
	assert.Equal(t, "99", row)
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		category errors.ErrorCategory
	}{
		{"missing master gain", "master-gain:\n  volume: 90\n  muted: true\n", "", errors.CategoryMissingKey},
		{"missing master volume", "  volume: 90\n", "", errors.CategoryMissingKey},
		{"missing validity", "adat-validity: false\n", "", errors.CategoryMissingKey},
		{"missing usb sync", "usb-sync-status: Locked\n", "", errors.CategoryMissingKey},
		{"missing matrix", "matrix:\n", "matrix-rows:\n", errors.CategoryMissingKey},
		{"missing mix name", "- name: B\n", "- label: B\n", errors.CategoryMissingKey},
		{"missing channel", `- channel: "2"`, "- port: 2", errors.CategoryMissingKey},
		{"unknown mix", "name: B", "name: Z", errors.CategoryUnknownKey},
		{"unknown capture", `channel: "2"`, "channel: 9", errors.CategoryUnknownKey},
		{"unknown output", "channel: 01", "channel: 12", errors.CategoryUnknownKey},
		{"non-numeric key", "number: 1", "number: one", errors.CategoryUnknownKey},
		{"invalid source", "source: PCM 2", "source: PCM 99", errors.CategoryInvalidEnumValue},
		{"invalid clock", "sample-clock-source: Internal", "sample-clock-source: Word Clock", errors.CategoryInvalidEnumValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Replace(minimal, tt.old, tt.new, 1)
			require.NotEqual(t, minimal, text)

			doc, err := Unmarshal([]byte(text))
			require.NoError(t, err)

			err = Apply(discovered(t, mixertest.Scarlett()), doc)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, tt.category), err.Error())
		})
	}
}

func TestApplyUndiscoveredEnum(t *testing.T) {
	doc, err := Unmarshal([]byte(minimal))
	require.NoError(t, err)

	err = Apply(mixer.New(), doc)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotPopulated))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Unmarshal(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryMissingKey))

	_, err = Unmarshal([]byte("matrix: [\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryMissingKey))

	_, err = Unmarshal([]byte("matrix:\n  - number: [1, 2]\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryMissingKey))
}

func TestFiles(t *testing.T) {
	m := discovered(t, mixertest.Scarlett())
	path := filepath.Join(t.TempDir(), "mixer.yaml")

	require.NoError(t, WriteFile(path, FromMixer(m)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FromMixer(m), doc)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
