package chart

// ECharts option model. Only the fields the charts use are declared; field order is
// fixed so the serialized payload is stable between runs.

type Option struct {
	BackgroundColor string    `json:"backgroundColor"`
	TextStyle       TextStyle `json:"textStyle"`
	Title           []Title   `json:"title"`
	Tooltip         Tooltip   `json:"tooltip"`
	Legend          Legend    `json:"legend"`
	Toolbox         Toolbox   `json:"toolbox"`
	Grid            *Grid     `json:"grid,omitempty"`
	XAxis           *Axis     `json:"xAxis,omitempty"`
	YAxis           *Axis     `json:"yAxis,omitempty"`
	Series          []Series  `json:"series"`
}

type TextStyle struct {
	FontSize   int    `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	Color      string `json:"color,omitempty"`
}

type Title struct {
	Text      string     `json:"text"`
	Left      string     `json:"left,omitempty"`
	Top       string     `json:"top,omitempty"`
	TextAlign string     `json:"textAlign,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

type Tooltip struct {
	Trigger string `json:"trigger"`
	Confine bool   `json:"confine"`
}

type Legend struct {
	Data      []string  `json:"data"`
	Bottom    string    `json:"bottom,omitempty"`
	TextStyle TextStyle `json:"textStyle"`
}

// Toolbox carries only the image export button. Brush and data zoom are left out so
// the chart has no selection tools.
type Toolbox struct {
	Show    bool           `json:"show"`
	Right   string         `json:"right,omitempty"`
	Feature ToolboxFeature `json:"feature"`
}

type ToolboxFeature struct {
	SaveAsImage SaveAsImage `json:"saveAsImage"`
}

type SaveAsImage struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	PixelRatio int    `json:"pixelRatio"`
	Title      string `json:"title"`
}

type Grid struct {
	Left         string `json:"left"`
	Right        string `json:"right"`
	Top          string `json:"top"`
	Bottom       string `json:"bottom"`
	ContainLabel bool   `json:"containLabel"`
}

type Axis struct {
	Type          string     `json:"type"`
	Name          string     `json:"name,omitempty"`
	NameLocation  string     `json:"nameLocation,omitempty"`
	NameGap       int        `json:"nameGap,omitempty"`
	NameTextStyle *TextStyle `json:"nameTextStyle,omitempty"`
	Data          []string   `json:"data,omitempty"`
	MinInterval   int        `json:"minInterval,omitempty"`
}

type Series struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Radius      string      `json:"radius,omitempty"`
	Center      []string    `json:"center,omitempty"`
	Stack       string      `json:"stack,omitempty"`
	BarMaxWidth int         `json:"barMaxWidth,omitempty"`
	ItemStyle   *ItemStyle  `json:"itemStyle,omitempty"`
	Label       *Label      `json:"label,omitempty"`
	Data        []*DataItem `json:"data"`
}

// DataItem is one slice or bar segment. A nil item serializes as null, which ECharts
// draws as an empty point.
type DataItem struct {
	Name      string       `json:"name,omitempty"`
	Value     int          `json:"value"`
	ItemStyle *ItemStyle   `json:"itemStyle,omitempty"`
	Label     *Label       `json:"label,omitempty"`
	Tooltip   *ItemTooltip `json:"tooltip,omitempty"`
}

type ItemStyle struct {
	Color       string `json:"color,omitempty"`
	BorderColor string `json:"borderColor,omitempty"`
	BorderWidth int    `json:"borderWidth,omitempty"`
}

type Label struct {
	Show      bool   `json:"show"`
	Position  string `json:"position,omitempty"`
	Formatter string `json:"formatter,omitempty"`
	FontSize  int    `json:"fontSize,omitempty"`
}

type ItemTooltip struct {
	Formatter string `json:"formatter"`
}
