package tui

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/rivo/tview"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	labelWidth  = "Width"
	labelHeight = "Height"
	labelMines  = "Mines"
)

type customFieldDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func decodeCustomField(src map[string][]string) (mines.GameParams, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto customFieldDTO
	if err := dec.Decode(&dto, src); err != nil {
		return mines.GameParams{}, err
	}
	params := mines.GameParams(dto)
	if err := params.Validate(); err != nil {
		return mines.GameParams{}, err
	}
	return params, nil
}

// customForm asks for a field size, prefilled with current. submit gets the
// validated field; invalid input is reported in the form title.
func customForm(current mines.GameParams, submit func(mines.GameParams), cancel func()) *tview.Form {
	form := tview.NewForm()
	form.AddInputField(labelWidth, strconv.Itoa(current.Width), 5, tview.InputFieldInteger, nil).
		AddInputField(labelHeight, strconv.Itoa(current.Height), 5, tview.InputFieldInteger, nil).
		AddInputField(labelMines, strconv.Itoa(current.MineCount), 5, tview.InputFieldInteger, nil)

	text := func(label string) string {
		return form.GetFormItemByLabel(label).(*tview.InputField).GetText()
	}

	form.AddButton("OK", func() {
		params, err := decodeCustomField(map[string][]string{
			"width":      {text(labelWidth)},
			"height":     {text(labelHeight)},
			"mine_count": {text(labelMines)},
		})
		if err != nil {
			form.SetTitle(fmt.Sprintf(" %s ", err))
			return
		}
		submit(params)
	}).AddButton("Cancel", cancel)
	form.SetCancelFunc(cancel)
	form.SetBorder(true).SetTitle(" Custom field ")
	return form
}
