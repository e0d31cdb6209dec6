// Package memory implementa los repositorios en mapas protegidos por
// mutex. Es el backend de desarrollo y de los tests; el de producción
// es adapters/storage/postgres.
package memory

// paginate recorta la página pedida; size <= 0 devuelve todo.
func paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 0 {
		page = 0
	}
	start := page * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
