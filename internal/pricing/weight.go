package pricing

import "github.com/freightservices/quote-api/internal/domain"

// DimDivisor is the cubic inches per pound used for dimensional weight
const DimDivisor = 166.0

// BillableWeight is the outcome of comparing actual and dimensional weight
type BillableWeight struct {
	Billable    float64
	Dimensional float64
	Method      domain.WeightMethod
}

// DimensionalWeight returns the override when positive, otherwise
// (l*w*h/166)*pieces when all dimensions are positive, otherwise 0.
func DimensionalWeight(length, width, height, override float64, pieces int) float64 {
	if override > 0 {
		return override
	}
	if length > 0 && width > 0 && height > 0 {
		return (length * width * height / DimDivisor) * float64(pieces)
	}
	return 0
}

// ComputeBillableWeight picks the larger of actual and dimensional weight
func ComputeBillableWeight(actual, length, width, height, dimOverride float64, pieces int) BillableWeight {
	dim := DimensionalWeight(length, width, height, dimOverride, pieces)
	return billableFrom(actual, dim)
}

func billableFrom(actual, dim float64) BillableWeight {
	billable := actual
	if dim > billable {
		billable = dim
	}
	method := domain.WeightMethodActual
	if dim > 0 && billable == dim {
		method = domain.WeightMethodDimensional
	}
	return BillableWeight{Billable: billable, Dimensional: dim, Method: method}
}
