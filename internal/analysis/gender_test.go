package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferGender(t *testing.T) {
	cases := []struct {
		name string
		want Gender
	}{
		{"Mr. Kamal Uddin", GenderMale},
		{"s/o Rashid", GenderMale},
		{"Mrs. Kamal", GenderFemale},
		{"Ms Taylor", GenderFemale},
		{"Noreen d/o Aslam", GenderFemale},
		{"Laila bint Khalid", GenderFemale},
		{"Usman Tariq", GenderMale},
		{"Ayesha Khan", GenderFemale},
		{"Syed Shah", GenderMale},
		{"Rani Devi", GenderFemale},
		{"Sofia Lopez", GenderFemale},
		{"Zoë Smith", GenderUnknown},
		{"Chris Evans", GenderUnknown},
		{"", GenderUnknown},
		{"   ", GenderUnknown},
		{"ÁYESHA", GenderFemale},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, InferGender(c.name))
		})
	}
}

func TestParseGender(t *testing.T) {
	assert.Equal(t, GenderMale, ParseGender("M"))
	assert.Equal(t, GenderMale, ParseGender(" male "))
	assert.Equal(t, GenderFemale, ParseGender("Female"))
	assert.Equal(t, GenderFemale, ParseGender("f"))
	assert.Equal(t, GenderUnknown, ParseGender("other"))
	assert.Equal(t, GenderUnknown, ParseGender(""))
}
