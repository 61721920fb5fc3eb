package sparql

// Results SPARQL 1.1 JSON 查詢結果
// SELECT 查詢回傳 head/results，ASK 查詢回傳 boolean
type Results struct {
	Head    Head         `json:"head"`
	Results BindingsPage `json:"results"`
	Boolean *bool        `json:"boolean,omitempty"`
}

// Head 結果標頭
type Head struct {
	Vars []string `json:"vars"`
}

// BindingsPage 結果列集合
type BindingsPage struct {
	Bindings []Binding `json:"bindings"`
}

// Binding 單一結果列，變數名對應值
type Binding map[string]Value

// Value 單一欄位值
type Value struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Has 變數是否在此列有值
func (b Binding) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// Get 取變數值，未綁定時返回空字串
func (b Binding) Get(name string) string {
	if v, ok := b[name]; ok {
		return v.Value
	}
	return ""
}
