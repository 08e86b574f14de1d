package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_UserRef_WhenRawOrPopulated_ShouldCompareEqually(t *testing.T) {
	assert := assert.New(t)

	raw := UserRef{ID: "  ABC-123 "}
	populated := UserRef{User: &User{ID: "abc-123"}}

	assert.True(raw.Is("abc-123"))
	assert.True(populated.Is("ABC-123"))
	assert.Equal(raw.Key(), populated.Key())
	assert.False(UserRef{}.Is(""))
}

func Test_NormalizeTags_ShouldTrimLowercaseAndDeduplicate(t *testing.T) {
	assert.Equal(t, []string{"go", "remote"}, NormalizeTags([]string{" Go ", "", "remote", "GO"}))
}

func Test_ParseEnums_WhenUnknown_ShouldFail(t *testing.T) {
	_, err := ToRole("superuser")
	assert.Error(t, err)

	_, err = ToJobStatus("archived")
	assert.Error(t, err)

	_, err = ToJobType("gig")
	assert.Error(t, err)

	_, ok := ToMembershipRole("guest")
	assert.False(t, ok)

	role, err := ToRole(" Employer ")
	assert.NoError(t, err)
	assert.Equal(t, RoleEmployer, role)
}
