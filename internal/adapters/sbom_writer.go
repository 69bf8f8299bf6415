package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

const SBOMFileName = "sbom.spdx.json"

type SBOMWriterAdapter struct{}

func NewSBOMWriterAdapter() SBOMWriterAdapter {
	return SBOMWriterAdapter{}
}

// WriteSBOM writes an SPDX 2.3 document describing the project and the
// artifacts it depends on. Repeated coordinates are listed once.
func (a SBOMWriterAdapter) WriteSBOM(dir string, project types.ArtifactCoordinate, createdAt string, artifacts []types.ArtifactRef) error {
	if strings.TrimSpace(dir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sbom directory is empty")
	}
	if strings.TrimSpace(project.Group) == "" || strings.TrimSpace(project.Artifact) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sbom project coordinate is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create sbom directory").
			WithCause(err)
	}
	type spdxCreationInfo struct {
		Created  string   `json:"created"`
		Creators []string `json:"creators"`
	}
	type spdxExternalRef struct {
		ReferenceCategory string `json:"referenceCategory"`
		ReferenceType     string `json:"referenceType"`
		ReferenceLocator  string `json:"referenceLocator"`
	}
	type spdxPackage struct {
		SPDXID           string            `json:"SPDXID"`
		Name             string            `json:"name"`
		VersionInfo      string            `json:"versionInfo"`
		DownloadLocation string            `json:"downloadLocation"`
		LicenseConcluded string            `json:"licenseConcluded"`
		LicenseDeclared  string            `json:"licenseDeclared"`
		Supplier         string            `json:"supplier"`
		ExternalRefs     []spdxExternalRef `json:"externalRefs,omitempty"`
	}
	type spdxRelationship struct {
		SpdxElementID      string `json:"spdxElementId"`
		RelationshipType   string `json:"relationshipType"`
		RelatedSpdxElement string `json:"relatedSpdxElement"`
	}
	created := strings.TrimSpace(createdAt)
	if created == "" {
		created = time.Now().UTC().Format(time.RFC3339)
	}
	projectID := spdxPackageID(project)
	payload := struct {
		SPDXVersion       string             `json:"SPDXVersion"`
		DataLicense       string             `json:"DataLicense"`
		SPDXID            string             `json:"SPDXID"`
		Name              string             `json:"name"`
		DocumentNamespace string             `json:"documentNamespace"`
		CreationInfo      spdxCreationInfo   `json:"creationInfo"`
		Packages          []spdxPackage      `json:"packages"`
		Relationships     []spdxRelationship `json:"relationships"`
		DocumentDescribes []string           `json:"documentDescribes"`
	}{
		SPDXVersion:       "SPDX-2.3",
		DataLicense:       "CC0-1.0",
		SPDXID:            "SPDXRef-DOCUMENT",
		Name:              fmt.Sprintf("mvnorder %s", project.String()),
		DocumentNamespace: fmt.Sprintf("https://spdx.org/spdxdocs/mvnorder/%s/%s", project.Key(), project.Version),
		CreationInfo: spdxCreationInfo{
			Created:  created,
			Creators: []string{"Tool: mvnorder"},
		},
		DocumentDescribes: []string{projectID},
	}
	seen := map[string]struct{}{}
	addPackage := func(coordinate types.ArtifactCoordinate) string {
		id := spdxPackageID(coordinate)
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
		payload.Packages = append(payload.Packages, spdxPackage{
			SPDXID:           id,
			Name:             coordinate.Key(),
			VersionInfo:      coordinate.Version,
			DownloadLocation: "NOASSERTION",
			LicenseConcluded: "NOASSERTION",
			LicenseDeclared:  "NOASSERTION",
			Supplier:         "NOASSERTION",
			ExternalRefs: []spdxExternalRef{{
				ReferenceCategory: "PACKAGE-MANAGER",
				ReferenceType:     "purl",
				ReferenceLocator:  packageURL(coordinate),
			}},
		})
		return id
	}
	addPackage(project)
	payload.Relationships = append(payload.Relationships, spdxRelationship{
		SpdxElementID:      "SPDXRef-DOCUMENT",
		RelationshipType:   "DESCRIBES",
		RelatedSpdxElement: projectID,
	})
	for _, ref := range artifacts {
		if ref.Key() == project.Key() {
			continue
		}
		if _, ok := seen[spdxPackageID(ref.Coordinate)]; ok {
			continue
		}
		id := addPackage(ref.Coordinate)
		payload.Relationships = append(payload.Relationships, spdxRelationship{
			SpdxElementID:      projectID,
			RelationshipType:   "DEPENDS_ON",
			RelatedSpdxElement: id,
		})
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal sbom payload").
			WithCause(err)
	}
	if err := os.WriteFile(filepath.Join(dir, SBOMFileName), data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sbom file").
			WithCause(err)
	}
	return nil
}

func spdxPackageID(coordinate types.ArtifactCoordinate) string {
	seed := fmt.Sprintf("%s@%s", coordinate.Key(), coordinate.Version)
	hash := sha256.Sum256([]byte(seed))
	return "SPDXRef-Package-" + hex.EncodeToString(hash[:8])
}

func packageURL(coordinate types.ArtifactCoordinate) string {
	purl := fmt.Sprintf("pkg:maven/%s/%s@%s", coordinate.Group, coordinate.Artifact, coordinate.Version)
	var qualifiers []string
	if coordinate.Classifier != "" {
		qualifiers = append(qualifiers, "classifier="+coordinate.Classifier)
	}
	if coordinate.TypeOrDefault() != types.DefaultArtifactType {
		qualifiers = append(qualifiers, "type="+coordinate.TypeOrDefault())
	}
	if len(qualifiers) > 0 {
		purl += "?" + strings.Join(qualifiers, "&")
	}
	return purl
}

var _ ports.SBOMPort = SBOMWriterAdapter{}
