package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RegistryCatalogKey returns the cache key for one institution's course catalog.
func (r *CacheKeyStruct) RegistryCatalogKey(sourceCode string) string {
	return fmt.Sprintf("registry:catalog:%s", sourceCode)
}

// RegistrySourcesKey returns the cache key for the institution list.
func (r *CacheKeyStruct) RegistrySourcesKey() string {
	return "registry:sources"
}

// SourceAliasKey returns the cache key for a resolved institution alias.
func (r *CacheKeyStruct) SourceAliasKey(alias string) string {
	return fmt.Sprintf("registry:alias:%s", alias)
}

var CacheKey = NewCacheKeyStruct()
