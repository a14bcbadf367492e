package kubernetes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestNewSecretProvider(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	namespace := "sid"

	provider := NewSecretProvider(clientset, namespace)

	assert.NotNil(t, provider, "SecretProvider should not be nil")
}

func TestGetSecretData(t *testing.T) {
	secretName := "sid-login"
	namespace := "sid"
	keys := []string{"username", "password", "missing-key"}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      secretName,
			Namespace: namespace,
		},
		Data: map[string][]byte{
			"username": []byte("inspector"),
			"password": []byte("s3cret"),
		},
	}

	clientset := fake.NewSimpleClientset(secret)
	provider := NewSecretProvider(clientset, namespace)
	ctx := context.Background()

	// Test getting existing keys
	data, err := provider.GetSecretData(ctx, secretName, keys)

	require.NoError(t, err, "GetSecretData should not return an error for existing secret")
	assert.Equal(t, "inspector", data["username"], "Value for username should match")
	assert.Equal(t, "s3cret", data["password"], "Value for password should match")
	_, found := data["missing-key"]
	assert.False(t, found, "Missing keys should be omitted")

	// Test with empty secret name
	_, err = provider.GetSecretData(ctx, "", keys)
	assert.Error(t, err, "GetSecretData should return an error for empty secret name")

	// Test with non-existent secret
	_, err = provider.GetSecretData(ctx, "non-existent-secret", keys)
	assert.Error(t, err, "GetSecretData should return an error for non-existent secret")

	// Secret in another namespace is not visible
	other := NewSecretProvider(clientset, "other")
	_, err = other.GetSecretData(ctx, secretName, keys)
	assert.Error(t, err, "GetSecretData should be scoped to the provider namespace")
}
