// Package artifact persiste os artefatos trocados entre as etapas do pipeline.
// Cada artefato é regravado por completo a cada execução.
package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

// FileStore grava artefatos no sistema de arquivos local sob um diretório base
type FileStore struct {
	basePath string
}

// NewFileStore cria o diretório base se necessário
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("artifact: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, pkgerrors.Wrap(err, "artifact: ensure base path")
	}
	return &FileStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	return s.basePath
}

// Path retorna o caminho completo de um artefato
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.basePath, filepath.Base(name))
}

// Write substitui o artefato de forma atômica (arquivo temporário + rename), então
// um leitor nunca enxerga uma escrita parcial.
func (s *FileStore) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := s.Path(name)
	tmp, err := os.CreateTemp(s.basePath, "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return pkgerrors.Wrapf(err, "artifact: create temp file for %s", name)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return pkgerrors.Wrapf(err, "artifact: write %s", name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return pkgerrors.Wrapf(err, "artifact: close %s", name)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return pkgerrors.Wrapf(err, "artifact: chmod %s", name)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return pkgerrors.Wrapf(err, "artifact: replace %s", name)
	}

	return nil
}

// Read lê o artefato. Arquivo ausente vira domain.ErrDataNotFound.
func (s *FileStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, pkgerrors.Wrapf(domain.ErrDataNotFound, "artefato %s", s.Path(name))
		}
		return nil, pkgerrors.Wrapf(err, "artifact: read %s", name)
	}

	return data, nil
}

// Exists informa se o artefato está presente
func (s *FileStore) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Remove apaga o artefato; ausência não é erro
func (s *FileStore) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return pkgerrors.Wrapf(err, "artifact: remove %s", name)
	}
	return nil
}
