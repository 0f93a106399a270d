// Package sequence genera los números legibles de documentos:
// facturas (INV), órdenes de compra (PO) y traslados (TRF).
//
// Los consecutivos de factura/PO son count-del-día + 1; el número se calcula
// dentro de la misma transacción que inserta el documento y la constraint
// UNIQUE de la columna resuelve la carrera (el caso de uso reintenta ante
// violación). El de traslado lleva sufijo aleatorio, también protegido por
// unique-insert con reintento.
package sequence

import (
	"fmt"
	"time"
)

// Prefijos de documento.
const (
	InvoicePrefix  = "INV"
	PurchasePrefix = "PO"
	TransferPrefix = "TRF"
)

// InvoiceNumber formatea INV-YYYYMMDD-NNNN donde NNNN = ventas del día + 1.
func InvoiceNumber(day time.Time, countToday int) string {
	return format(InvoicePrefix, day, countToday+1)
}

// PurchaseOrderNumber formatea PO-YYYYMMDD-NNNN donde NNNN = compras del día + 1.
func PurchaseOrderNumber(day time.Time, countToday int) string {
	return format(PurchasePrefix, day, countToday+1)
}

// TransferNumber formatea TRF-YYYYMMDD-NNNN con sufijo aleatorio de 4 dígitos.
// No está garantizado libre de colisiones; el insert confía en la constraint
// única y el llamador reintenta con otro sufijo.
func TransferNumber(day time.Time, suffix int) string {
	return format(TransferPrefix, day, suffix%10000)
}

func format(prefix string, day time.Time, n int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), n)
}
