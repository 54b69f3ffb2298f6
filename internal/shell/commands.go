/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shell

import "notepadino/internal/document"

// Action identifiers as declared in the layout resource.
const (
	ActionNew            = "New"
	ActionOpen           = "Open"
	ActionSave           = "Save"
	ActionSaveAs         = "Save_As"
	ActionPrint          = "Print"
	ActionPrintPreview   = "Print_Preview"
	ActionExportPDF      = "Export_PDF"
	ActionExit           = "Exit"
	ActionUndo           = "Undo"
	ActionRedo           = "Redo"
	ActionCut            = "Cut"
	ActionCopy           = "Copy"
	ActionPaste          = "Paste"
	ActionFind           = "Find"
	ActionReplace        = "Replace"
	ActionSelectAll      = "Select_All"
	ActionInsertDateTime = "Insert_Date_Time"
	ActionWordWrap       = "Word_Wrap"
	ActionFont           = "Font"
	ActionTextColor      = "Text_Color"
	ActionBackground     = "Background_Color"
	ActionBold           = "Bold"
	ActionItalic         = "Italic"
	ActionUnderline      = "Underline"
	ActionStrikethrough  = "Strikethrough"
	ActionAlignLeft      = "Align_Left"
	ActionAlignCenter    = "Align_Center"
	ActionAlignRight     = "Align_Right"
	ActionAlignJustify   = "Align_Justify"
	ActionZoomIn         = "Zoom_In"
	ActionZoomOut        = "Zoom_Out"
	ActionResetZoom      = "Reset_Zoom"
	ActionShowStatusBar  = "Show_Status_Bar"
	ActionShowToolbar    = "Show_Toolbar"
	ActionAbout          = "About"
	ActionCheckUpdates   = "Check_Updates"
)

// commandTable maps every action identifier to its handler.
func (w *Window) commandTable() map[string]Command {
	return map[string]Command{
		ActionNew:            w.NewDocument,
		ActionOpen:           w.OpenDocument,
		ActionSave:           func() { w.SaveDocument(nil) },
		ActionSaveAs:         func() { w.SaveDocumentAs(nil) },
		ActionPrint:          w.Print,
		ActionPrintPreview:   w.PrintPreview,
		ActionExportPDF:      w.ExportPDF,
		ActionExit:           w.RequestClose,
		ActionUndo:           func() { w.doc.Undo() },
		ActionRedo:           func() { w.doc.Redo() },
		ActionCut:            w.Cut,
		ActionCopy:           w.Copy,
		ActionPaste:          w.Paste,
		ActionFind:           w.ShowFindDialog,
		ActionReplace:        w.ShowFindDialog,
		ActionSelectAll:      w.doc.SelectAll,
		ActionInsertDateTime: w.InsertDateTime,
		ActionWordWrap:       w.ToggleWordWrap,
		ActionFont:           w.ChooseFont,
		ActionTextColor:      w.ChooseTextColor,
		ActionBackground:     w.ChooseBackgroundColor,
		ActionBold:           w.ToggleBold,
		ActionItalic:         w.ToggleItalic,
		ActionUnderline:      w.ToggleUnderline,
		ActionStrikethrough:  w.ToggleStrikethrough,
		ActionAlignLeft:      func() { w.SetAlignment(document.AlignLeft) },
		ActionAlignCenter:    func() { w.SetAlignment(document.AlignCenter) },
		ActionAlignRight:     func() { w.SetAlignment(document.AlignRight) },
		ActionAlignJustify:   func() { w.SetAlignment(document.AlignJustify) },
		ActionZoomIn:         w.ZoomIn,
		ActionZoomOut:        w.ZoomOut,
		ActionResetZoom:      w.ResetZoom,
		ActionShowStatusBar:  w.ToggleStatusBar,
		ActionShowToolbar:    w.ToggleToolbar,
		ActionAbout:          w.About,
		ActionCheckUpdates:   w.CheckUpdates,
	}
}
