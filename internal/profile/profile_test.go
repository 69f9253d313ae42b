package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dompet-app/dompet/internal/profile"
)

func TestProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Rina", (&profile.Profile{FullName: "Rina", Email: "r@x.id"}).DisplayName())
	assert.Equal(t, "rina", (&profile.Profile{Email: "rina@example.com"}).DisplayName())
	assert.Equal(t, "", (&profile.Profile{}).DisplayName())
}
