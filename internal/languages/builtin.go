package languages

var builtin = []LanguageDescriptor{
	{
		ID:        "cpp",
		Name:      "C++",
		Extension: ".cpp",
		Mode:      "cpp",
		Snippet: `#include <bits/stdc++.h>
using namespace std;

int main() {
    int T;
    cin >> T;

    while(T--) {

    }

    return 0;
}`,
	},
	{
		ID:        "c",
		Name:      "C",
		Extension: ".c",
		Mode:      "c",
		Snippet: `#include <stdio.h>

int main() {
    int T;
    scanf("%d", &T);

    while (T--) {

    }

    return 0;
}`,
	},
	{
		ID:        "python",
		Name:      "Python",
		Extension: ".py",
		Mode:      "python",
		Snippet: `T = int(input())

for _ in range(T):
    pass
`,
	},
	{
		ID:        "java",
		Name:      "Java",
		Extension: ".java",
		Mode:      "java",
		Snippet: `import java.util.Scanner;

public class Main {
    public static void main(String[] args) {
        Scanner sc = new Scanner(System.in);
        int T = sc.nextInt();

        for (int i = 0; i < T; i++) {

        }

        sc.close();
    }
}`,
	},
	{
		ID:        "javascript",
		Name:      "JavaScript",
		Extension: ".js",
		Mode:      "javascript",
		Snippet: `let T = parseInt(readline());

for (let i = 0; i < T; i++) {

}`,
	},
}
