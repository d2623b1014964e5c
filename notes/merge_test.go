package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	generated := StartMarker + "\nNEW\n" + EndMarker

	tests := []struct {
		name     string
		previous string
		want     string
	}{
		{
			name:     "replaces between markers",
			previous: "A\n" + StartMarker + "\nOLD\n" + EndMarker + "\nB",
			want:     "A\n" + StartMarker + "\nNEW\n" + EndMarker + "\nB",
		},
		{
			name:     "empty previous",
			previous: "",
			want:     generated,
		},
		{
			name:     "no markers appends after previous",
			previous: "Hand written.\n\n",
			want:     "Hand written.\n" + generated,
		},
		{
			name:     "start without end drops the rest",
			previous: "A\n" + StartMarker + "\nOLD",
			want:     "A\n" + generated,
		},
		{
			name:     "only generated section",
			previous: StartMarker + "\nOLD\n" + EndMarker,
			want:     generated,
		},
		{
			name:     "surrounding blank lines collapse",
			previous: "A\n\n\n" + StartMarker + "\nOLD\n" + EndMarker + "\n\n\nB\n\n",
			want:     "A\n" + generated + "\nB",
		},
		{
			name:     "trailing quotes stripped",
			previous: "\"A\n" + StartMarker + "\nOLD\n" + EndMarker + "\nB\"\n",
			want:     "A\n" + generated + "\nB",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Merge(tc.previous, generated))
		})
	}
}

func TestMergeSkip(t *testing.T) {
	previous := "Keep me\n" + SkipMarker + "\n" + StartMarker + "\nOLD\n" + EndMarker + "\n"
	assert.Equal(t, previous, Merge(previous, StartMarker+"\nNEW\n"+EndMarker))
}
