package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/cmpnet/space"
)

func bits(s string) []bool {
	b := make([]bool, len(s))
	for k := range s {
		b[k] = s[k] == '1'
	}
	return b
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred space.Predicate
		in   string
		want bool
	}{
		{"sorted empty", Sorted, "", true},
		{"sorted zeros", Sorted, "0000", true},
		{"sorted prefix", Sorted, "1100", true},
		{"sorted gap", Sorted, "1010", false},
		{"sorted high", Sorted, "0001", false},

		{"conway empty", Conway, "00000000", true},
		{"conway two sorted", Conway, "11000000", true},
		{"conway three sorted", Conway, "11100000", true},
		{"conway four sorted", Conway, "11110000", true},
		{"conway three unsorted", Conway, "11010000", false},
		{"conway wrong width", Conway, "1110", false},

		{"evacuate low full", EvacuateTop4, "11111010", true},
		{"evacuate high empty", EvacuateTop4, "01100000", true},
		{"evacuate neither", EvacuateTop4, "01101000", false},

		{"three ones", AtLeastThreeOrPairAtZero, "0111", true},
		{"pair at zero", AtLeastThreeOrPairAtZero, "1001", true},
		{"pair elsewhere", AtLeastThreeOrPairAtZero, "0110", false},
		{"single one", AtLeastThreeOrPairAtZero, "0100", false},
		{"all zero", AtLeastThreeOrPairAtZero, "0000", false},

		{"trivial zero", PairAtZeroOrTrivial, "0000", true},
		{"trivial single", PairAtZeroOrTrivial, "0010", true},
		{"trivial pair elsewhere", PairAtZeroOrTrivial, "0011", false},

		{"max empty", MaxAtZero, "000", true},
		{"max at zero", MaxAtZero, "101", true},
		{"max elsewhere", MaxAtZero, "010", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(bits(tt.in)))
		})
	}
}

// The Conway read-out must be correct on every sorted output, so any sorting
// network satisfies it.
func TestConwayAcceptsSortedOutputs(t *testing.T) {
	for ones := 0; ones <= 8; ones++ {
		b := make([]bool, 8)
		for k := range ones {
			b[k] = true
		}
		assert.True(t, Conway(b), "%d ones", ones)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		r, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name)
		assert.NotNil(t, r.Predicate)
		assert.NotEmpty(t, r.Description)
	}

	_, err := Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownRule)
	assert.Len(t, All(), len(Names()))
}

func TestWiresFor(t *testing.T) {
	sorted, err := Lookup("sorted")
	require.NoError(t, err)
	conway, err := Lookup("conway")
	require.NoError(t, err)

	tests := []struct {
		name      string
		rule      Rule
		requested int
		want      int
		wantErr   bool
	}{
		{"free rule needs count", sorted, 0, 0, true},
		{"free rule takes count", sorted, 6, 6, false},
		{"fixed rule default", conway, 0, 8, false},
		{"fixed rule same", conway, 8, 8, false},
		{"fixed rule other", conway, 6, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.WiresFor(tt.requested)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConwayNetworkIsValid(t *testing.T) {
	require.Len(t, ConwayNetwork, 19)
	assert.NoError(t, ConwayNetwork.Validate(8))
}
