// Package repository define las interfaces de persistencia del dominio.
//
// Las implementaciones viven en internal/store/adapters (pg, memory).
// Los services dependen de estas interfaces, nunca de un driver concreto.
package repository
