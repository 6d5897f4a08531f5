package tailor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingKeywords(t *testing.T) {
	resume := "Backend engineer. Built services in Golang and PostgreSQL."
	job := `We are looking for a backend engineer with Kubernetes, Kafka and C++ experience.
Kubernetes operators, Kafka streams, Terraform. PostgreSQL is a plus. 2024.`

	got := MissingKeywords(resume, job, 10)

	assert.Equal(t, []string{"kafka", "kubernetes", "c++", "operators", "streams", "terraform"}, got)
}

func TestMissingKeywordsLimit(t *testing.T) {
	got := MissingKeywords("", "alpha beta beta gamma gamma gamma", 2)
	assert.Equal(t, []string{"gamma", "beta"}, got)

	assert.Empty(t, MissingKeywords("", "alpha", 0))
	assert.Empty(t, MissingKeywords("alpha", "alpha", 5))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"node.js", "c#", "golang"}, tokenize("Node.js, C#; Go golang 42 ab."))
}
