// Package filestore maneja los archivos físicos de los documentos digitalizados:
// escritura streaming con SHA-256 al vuelo, lectura y borrado.
package filestore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore administra los archivos bajo un directorio raíz.
type FileStore struct {
	dir string
}

// SaveResult resultado de guardar un archivo en disco.
type SaveResult struct {
	NombreArchivo string // nombre generado, relativo al directorio raíz
	Tamano        int64
	Checksum      string // SHA-256 hex del contenido
}

// New crea el FileStore y asegura que el directorio exista.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("crear directorio de almacenamiento %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Save escribe el contenido en disco bajo un nombre generado resistente a
// colisiones (uuid + extensión original) calculando SHA-256 durante la copia.
//
// Patrón: archivo temporal → escritura + hash → fsync → rename atómico.
// Ante cualquier error el temporal se elimina.
func (fs *FileStore) Save(r io.Reader, nombreOriginal string) (*SaveResult, error) {
	nombre := nombreAlmacenamiento(nombreOriginal)
	fullPath := filepath.Join(fs.dir, nombre)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("crear archivo temporal: %w", err)
	}

	hasher := sha256.New()
	size, err := io.Copy(f, io.TeeReader(r, hasher))
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("escribir archivo: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("fsync: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("cerrar archivo: %w", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("rename atómico: %w", err)
	}

	return &SaveResult{
		NombreArchivo: nombre,
		Tamano:        size,
		Checksum:      hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Open abre un archivo almacenado para lectura. El llamador debe cerrarlo.
func (fs *FileStore) Open(nombreArchivo string) (*os.File, error) {
	f, err := os.Open(filepath.Join(fs.dir, nombreArchivo))
	if err != nil {
		return nil, fmt.Errorf("abrir archivo %s: %w", nombreArchivo, err)
	}
	return f, nil
}

// FullPath devuelve la ruta absoluta de un archivo almacenado.
func (fs *FileStore) FullPath(nombreArchivo string) string {
	return filepath.Join(fs.dir, nombreArchivo)
}

// Delete elimina el archivo físico. Devuelve nil si ya no existe.
func (fs *FileStore) Delete(nombreArchivo string) error {
	err := os.Remove(filepath.Join(fs.dir, nombreArchivo))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar archivo %s: %w", nombreArchivo, err)
	}
	return nil
}

// Exists verifica si el archivo físico existe.
func (fs *FileStore) Exists(nombreArchivo string) bool {
	_, err := os.Stat(filepath.Join(fs.dir, nombreArchivo))
	return err == nil
}

// nombreAlmacenamiento genera "uuid.ext" preservando la extensión original en minúsculas.
func nombreAlmacenamiento(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.New().String() + ext
}
