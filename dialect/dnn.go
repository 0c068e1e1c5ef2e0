package dialect

import "github.com/wippyai/gpu-async/ir"

// Handle types produced by the compute library leaves.
var (
	DNNHandle            ir.Type = ir.OpaqueType{Name: "dnn.handle"}
	DNNTensorDescriptor  ir.Type = ir.OpaqueType{Name: "dnn.tensor_descriptor"}
	DNNPoolingDescriptor ir.Type = ir.OpaqueType{Name: "dnn.pooling_descriptor"}
)

// NewDNN creates a compute library leaf. The operands and results are taken as given.
func NewDNN(kind ir.Kind, operands []*ir.Value, results []ir.Type, attrs ir.Attrs) *ir.Operation {
	return ir.NewOperation(kind, operands, results, attrs, 0)
}
