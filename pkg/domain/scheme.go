package domain

// ColorScheme はモデルが出力する部位ごとの配色定義を保持します。
// 必須の基本色以外はすべて任意で、空の場合はその見た目の要素を描画しません。
type ColorScheme struct {
	Head        HeadColors       `json:"head"`
	Body        BodyColors       `json:"body"`
	Arms        ArmColors        `json:"arms"`
	Legs        LegColors        `json:"legs"`
	Accessories *AccessoryColors `json:"accessories,omitempty"`
}

// HeadColors は頭部の配色です。Accessories はヘアクリップ等の小物の色リストです。
type HeadColors struct {
	Skin          string   `json:"skin"`
	Hair          string   `json:"hair"`
	HairHighlight string   `json:"hairHighlight,omitempty"`
	HairShadow    string   `json:"hairShadow,omitempty"`
	Eyes          string   `json:"eyes"`
	EyeDetail     string   `json:"eyeDetail,omitempty"`
	Eyebrows      string   `json:"eyebrows,omitempty"`
	Mouth         string   `json:"mouth,omitempty"`
	Nose          string   `json:"nose,omitempty"`
	Blush         string   `json:"blush,omitempty"`
	Accessories   []string `json:"accessories,omitempty"`
}

// BodyColors は胴体の配色です。Details はテクスチャ用の細部色リストです。
type BodyColors struct {
	Primary   string   `json:"primary"`
	Secondary string   `json:"secondary,omitempty"`
	Accent    string   `json:"accent,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Collar    string   `json:"collar,omitempty"`
	Pockets   string   `json:"pockets,omitempty"`
	Belt      string   `json:"belt,omitempty"`
	Details   []string `json:"details,omitempty"`
}

// ArmColors は両腕の配色です。Watch は左腕にのみ描画されます。
type ArmColors struct {
	Skin       string `json:"skin"`
	Clothing   string `json:"clothing"`
	Detail     string `json:"detail,omitempty"`
	SleeveTrim string `json:"sleeveTrim,omitempty"`
	Watch      string `json:"watch,omitempty"`
}

// LegColors は両脚の配色です。靴は見た目上重要なため個別のフィールドを持ちます。
type LegColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
	Shoes     string `json:"shoes,omitempty"`
	ShoeLaces string `json:"shoeLaces,omitempty"`
	ShoeSole  string `json:"shoeSole,omitempty"`
	KneePads  string `json:"kneePads,omitempty"`
	Pockets   string `json:"pockets,omitempty"`
	Belt      string `json:"belt,omitempty"`
}

// AccessoryColors は独立して任意なアクセサリーの配色です。
type AccessoryColors struct {
	Hat      string `json:"hat,omitempty"`
	Glasses  string `json:"glasses,omitempty"`
	Beard    string `json:"beard,omitempty"`
	Backpack string `json:"backpack,omitempty"`
	Necklace string `json:"necklace,omitempty"`
	Earrings string `json:"earrings,omitempty"`
}

// Palette は手続き生成で使う4色のパレットです。各値は "#rrggbb" 形式です。
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Skin      string `json:"skin"`
}

// Clothing は服装のカテゴリです。
type Clothing string

const (
	ClothingCasual Clothing = "casual"
	ClothingStreet Clothing = "street"
	ClothingFormal Clothing = "formal"
	ClothingSporty Clothing = "sporty"
)

// Style はプロンプトから抽出した装飾の有無と服装カテゴリです。
type Style struct {
	HasHat     bool     `json:"hasHat"`
	HasGlasses bool     `json:"hasGlasses"`
	HasBeard   bool     `json:"hasBeard"`
	Clothing   Clothing `json:"clothing"`
}
