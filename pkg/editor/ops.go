package editor

import "fmt"

// Op は 1 回分の編集操作です。HTTP や CLI からまとめて適用するために使います。
// Color と Size は省略時に直前の値を引き継ぎます。
type Op struct {
	Tool  string `json:"tool"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// ApplyOps は操作を順に適用し、ピクセルが変化した操作の数を返します。
// 不正な操作があった時点で中断し、それまでの変更は残ります。
func (e *Editor) ApplyOps(ops []Op) (int, error) {
	changed := 0
	for i, op := range ops {
		tool, err := ParseTool(op.Tool)
		if err != nil {
			return changed, fmt.Errorf("op %d: %w", i, err)
		}
		e.tool = tool
		if op.Color != "" {
			if err := e.SetHexColor(op.Color); err != nil {
				return changed, fmt.Errorf("op %d: %w", i, err)
			}
		}
		if op.Size != 0 {
			if err := e.SetBrushSize(op.Size); err != nil {
				return changed, fmt.Errorf("op %d: %w", i, err)
			}
		}
		if e.Apply(op.X, op.Y) {
			changed++
		}
	}
	return changed, nil
}
