package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
)

// snapshotCourse mirrors one course entry in the registry snapshot JSON.
type snapshotCourse struct {
	ID   string `json:"id"`
	Data struct {
		Src   string `json:"src"`
		Code  string `json:"code"`
		Title string `json:"title"`
		Desc  string `json:"desc"`
	} `json:"data"`
	DSE struct {
		Skills []string `json:"skills"`
		// skill_groups is doubly nested in the snapshot; only the first
		// weight map is meaningful.
		SkillGroups [][]map[string]float64 `json:"skill_groups"`
	} `json:"dse"`
}

// snapshotFile mirrors the registry snapshot object layout.
type snapshotFile struct {
	Courses []snapshotCourse `json:"C"`
	Lookup  struct {
		Universities map[string][]string `json:"universities"`
	} `json:"lookup"`
}

// Snapshot is a fully parsed registry snapshot: per-source catalogs in file
// order plus the institution alias lookup. Immutable after parsing.
type Snapshot struct {
	catalogs     map[string][]model.CourseRecord
	aliases      map[string]string // lower-cased alias -> source code
	institutions []model.Institution
}

// ParseSnapshot decodes a registry snapshot from its JSON object form.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode registry snapshot: %w", err)
	}

	snap := &Snapshot{
		catalogs: make(map[string][]model.CourseRecord),
		aliases:  make(map[string]string),
	}

	for _, c := range file.Courses {
		record := model.CourseRecord{
			ID:                c.ID,
			SourceInstitution: c.Data.Src,
			Title:             c.Data.Title,
			Code:              c.Data.Code,
			Description:       c.Data.Desc,
			Skills:            c.DSE.Skills,
		}
		if len(c.DSE.SkillGroups) > 0 && len(c.DSE.SkillGroups[0]) > 0 {
			record.SkillGroupWeights = c.DSE.SkillGroups[0][0]
		}
		snap.catalogs[c.Data.Src] = append(snap.catalogs[c.Data.Src], record)
	}

	codes := make([]string, 0, len(file.Lookup.Universities))
	for code := range file.Lookup.Universities {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		alts := file.Lookup.Universities[code]
		inst := model.Institution{Code: code, Aliases: alts}
		if len(alts) > 0 {
			inst.Name = alts[0]
		}
		snap.institutions = append(snap.institutions, inst)

		snap.aliases[strings.ToLower(code)] = code
		for _, alt := range alts {
			snap.aliases[strings.ToLower(alt)] = code
		}
	}

	return snap, nil
}

// Resolve maps a free-form institution name to its source code.
func (s *Snapshot) Resolve(source string) (string, bool) {
	code, ok := s.aliases[strings.ToLower(strings.TrimSpace(source))]
	return code, ok
}

// Catalog returns the course list for a source code, in snapshot order.
func (s *Snapshot) Catalog(sourceCode string) []model.CourseRecord {
	return s.catalogs[sourceCode]
}

// SourceCodes lists every source code that has at least one course, sorted.
func (s *Snapshot) SourceCodes() []string {
	codes := make([]string, 0, len(s.catalogs))
	for code := range s.catalogs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Institutions returns the alias-lookup entries in code order.
func (s *Snapshot) Institutions() []model.Institution {
	return s.institutions
}

// FileProvider serves a registry snapshot loaded from a local JSON file.
// Intended for development and the seeder; production reads from PostgreSQL.
type FileProvider struct {
	snap *Snapshot
}

// NewFileProvider reads and parses the snapshot at path.
func NewFileProvider(path string) (*FileProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, err
	}
	return &FileProvider{snap: snap}, nil
}

func (p *FileProvider) ResolveSource(_ context.Context, source string) (string, error) {
	code, ok := p.snap.Resolve(source)
	if !ok {
		return "", ErrUnknownSource
	}
	return code, nil
}

func (p *FileProvider) FetchCatalog(_ context.Context, sourceCode string) ([]model.CourseRecord, error) {
	return p.snap.Catalog(sourceCode), nil
}

func (p *FileProvider) Sources(_ context.Context) ([]model.Institution, error) {
	return p.snap.institutions, nil
}
