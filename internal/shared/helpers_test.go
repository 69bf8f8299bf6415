package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mvnorder/internal/types"
)

func TestLayoutPath(t *testing.T) {
	tests := []struct {
		coordinate types.ArtifactCoordinate
		want       string
	}{
		{
			coordinate: types.ArtifactCoordinate{Group: "org.slf4j", Artifact: "slf4j-api", Version: "2.0.9"},
			want:       "org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar",
		},
		{
			coordinate: types.ArtifactCoordinate{Group: "io.netty", Artifact: "netty-transport-native-epoll", Version: "4.1.100", Classifier: "linux-x86_64"},
			want:       "io/netty/netty-transport-native-epoll/4.1.100/netty-transport-native-epoll-4.1.100-linux-x86_64.jar",
		},
		{
			coordinate: types.ArtifactCoordinate{Group: "com.example", Artifact: "bom", Version: "1.0", Type: "pom"},
			want:       "com/example/bom/1.0/bom-1.0.pom",
		},
		{
			coordinate: types.ArtifactCoordinate{Group: "com.example", Artifact: "core", Version: "1.0", Type: "test-jar"},
			want:       "com/example/core/1.0/core-1.0-tests.jar",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LayoutPath(tt.coordinate))
	}
}

func TestRepositoryScheme(t *testing.T) {
	assert.Equal(t, "https", RepositoryScheme("HTTPS://repo.maven.apache.org/maven2"))
	assert.Equal(t, "s3", RepositoryScheme("s3://artifacts/maven"))
	assert.Equal(t, "file", RepositoryScheme("file:///srv/maven"))
	assert.Equal(t, "file", RepositoryScheme("/home/dev/.m2/repository"))
	assert.Equal(t, "file", RepositoryScheme(`C:\maven`))
}

func TestLocalDir(t *testing.T) {
	assert.Equal(t, "/srv/maven", LocalDir("file:///srv/maven"))
	assert.Equal(t, "relative/repo", LocalDir("relative/repo"))
	assert.Empty(t, LocalDir("https://repo.maven.apache.org/maven2"))
	assert.Empty(t, LocalDir(""))
}
