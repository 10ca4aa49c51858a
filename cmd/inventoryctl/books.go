package main

import (
	"fmt"

	"github.com/spf13/cobra"

	appbook "github.com/xiebiao/library-inventory/internal/application/book"
)

func newBooksCmd(getApp func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "图书目录操作",
	}
	cmd.AddCommand(
		newBooksAddCmd(getApp),
		newBooksGetCmd(getApp),
		newBooksModifyCmd(getApp),
		newBooksDeleteCmd(getApp),
		newBooksLendCmd(getApp),
		newBooksListCmd(getApp),
	)
	return cmd
}

func newBooksAddCmd(getApp func() *app) *cobra.Command {
	var req appbook.AddBookRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "登记新图书(数量和位置未设置)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			uc, err := a.useCases()
			if err != nil {
				return err
			}
			resp, err := uc.addBook.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printJSON(resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Barcode, "barcode", "", "图书条码")
	flags.StringVar(&req.Name, "name", "", "书名")
	flags.StringVar(&req.Author, "author", "", "作者")
	flags.StringVar(&req.PublishedDate, "published-date", "", "出版日期")
	flags.StringVar(&req.Genre, "genre", "", "类别")
	return cmd
}

func newBooksGetCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <barcode>",
		Short: "查询图书",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			uc, err := a.useCases()
			if err != nil {
				return err
			}
			view, err := uc.retrieveBook.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(view)
		},
	}
}

func newBooksModifyCmd(getApp func() *app) *cobra.Command {
	var name, author, publishedDate, genre string

	cmd := &cobra.Command{
		Use:   "modify <barcode>",
		Short: "修改书名、作者、出版日期、类别(只修改指定的参数)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			uc, err := a.useCases()
			if err != nil {
				return err
			}

			// 只有显式传入的flag才算"提供了该字段"，--genre ""表示清空类别
			req := appbook.ModifyBookRequest{Barcode: args[0]}
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("author") {
				req.Author = &author
			}
			if flags.Changed("published-date") {
				req.PublishedDate = &publishedDate
			}
			if flags.Changed("genre") {
				req.Genre = &genre
			}

			if err := uc.modifyBook.Execute(cmd.Context(), req); err != nil {
				return err
			}
			a.printOK("已修改")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "书名")
	flags.StringVar(&author, "author", "", "作者")
	flags.StringVar(&publishedDate, "published-date", "", "出版日期")
	flags.StringVar(&genre, "genre", "", "类别")
	return cmd
}

func newBooksDeleteCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <barcode>",
		Short: "删除图书(台账记录保留)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			uc, err := a.useCases()
			if err != nil {
				return err
			}
			if err := uc.deleteBook.Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printOK("已删除")
			return nil
		},
	}
}

func newBooksLendCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lend <barcode>",
		Short: "借出一本",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			uc, err := a.useCases()
			if err != nil {
				return err
			}
			if err := uc.lendBook.Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printOK("已借出")
			return nil
		},
	}
}

func newBooksListCmd(getApp func() *app) *cobra.Command {
	var req appbook.ListBooksRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "分页列出图书",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			uc, err := a.useCases()
			if err != nil {
				return err
			}
			resp, err := uc.listBooks.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := a.printJSON(resp.List); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "第%d页，每页%d条，共%d条\n", resp.Page, resp.PageSize, resp.Total)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&req.Page, "page", 1, "页码")
	flags.IntVar(&req.PageSize, "page-size", 20, "每页数量(最大100)")
	flags.StringVar(&req.Keyword, "keyword", "", "搜索书名、作者、条码")
	flags.StringVar(&req.Genre, "genre", "", "按类别过滤")
	flags.StringVar(&req.SortBy, "sort", "", "排序: name_asc | quantity_desc(默认按登记时间倒序)")
	return cmd
}
